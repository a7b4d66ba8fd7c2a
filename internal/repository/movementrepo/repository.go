package movementrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pneustock/internal/domain"
	"pneustock/internal/errors"
	"pneustock/internal/pkg/cache"
	"pneustock/internal/pkg/logger"
)

// MovementRepository é a camada de acesso a dados do livro de movimentos.
type MovementRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMovementRepository cria e retorna uma nova instância do Repositório.
func NewMovementRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *MovementRepository {
	return &MovementRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// CreateWithStock insere o movimento e aplica sua quantidade normalizada ao
// estoque da referência em UMA transação. Nenhum leitor observa estado
// parcial: ou o lançamento e o novo saldo são visíveis juntos, ou nada muda.
// Retorna o movimento persistido e o novo saldo (com clamp em zero).
func (r *MovementRepository) CreateWithStock(ctx context.Context, movement domain.StockMovement) (domain.StockMovement, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.StockMovement{}, 0, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // no-op após o Commit

	// 1. Travar a linha da referência e ler o saldo atual.
	var qtyOnHand int
	err = tx.QueryRowContext(ctxTimeout,
		`SELECT qty_on_hand FROM products WHERE id = $1 FOR UPDATE`,
		movement.ProductID,
	).Scan(&qtyOnHand)
	if err == sql.ErrNoRows {
		return domain.StockMovement{}, 0, errors.NewNotFoundError(fmt.Sprintf("Referência com ID %s não existe na base de dados.", movement.ProductID))
	}
	if err != nil {
		return domain.StockMovement{}, 0, errors.NewDBError("Falha ao buscar referência para movimento", err)
	}

	// 2. Inserir o lançamento imutável.
	const insertSQL = `
		INSERT INTO movements (id, created_at, type, product_id, quantity, reason, note, user_name, doc_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err = tx.ExecContext(ctxTimeout, insertSQL,
		movement.ID,
		movement.CreatedAt,
		movement.Type,
		movement.ProductID,
		movement.Quantity,
		movement.Reason,
		movement.Note,
		movement.UserName,
		movement.DocRef,
	)
	if err != nil {
		return domain.StockMovement{}, 0, errors.NewDBError("Falha ao inserir movimento", err)
	}

	// 3. Aplicar a quantidade normalizada ao saldo, com clamp em zero.
	newQty := domain.ApplyMovement(qtyOnHand, movement.Quantity)

	_, err = tx.ExecContext(ctxTimeout,
		`UPDATE products SET qty_on_hand = $2, updated_at = $3 WHERE id = $1`,
		movement.ProductID, newQty, time.Now())
	if err != nil {
		return domain.StockMovement{}, 0, errors.NewDBError("Falha ao atualizar estoque da referência", err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return domain.StockMovement{}, 0, errors.NewDBError("Falha ao commitar transação de movimento", commitErr)
	}

	// O saldo mudou: invalida a entrada de cache da referência.
	if err := r.Cache.Delete(ctxTimeout, "product:"+movement.ProductID); err != nil {
		r.logger.Warn("Falha ao invalidar cache da referência após movimento.", map[string]interface{}{"product_id": movement.ProductID, "err": err.Error()})
	}

	r.logger.Info("Movimento registrado.", map[string]interface{}{
		"movement_id": movement.ID,
		"product_id":  movement.ProductID,
		"type":        string(movement.Type),
		"quantity":    movement.Quantity,
		"new_qty":     newQty,
	})
	return movement, newQty, nil
}

const movementColumns = `m.id, m.created_at, m.type, m.product_id, m.quantity, m.reason,
	m.note, m.user_name, m.doc_ref, p.width, p.aspect_ratio, p.rim_diameter`

// FindAll lista os movimentos (mais recentes primeiro), limitados a limit
// quando limit > 0. O LEFT JOIN tolera movimentos órfãos: quando a referência
// não existe mais, a entrada recebe o placeholder em vez de falhar.
func (r *MovementRepository) FindAll(ctx context.Context, limit int) ([]domain.MovementEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + movementColumns + `
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar movimentos", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// FindByProduct lista os movimentos de uma referência, mais recentes primeiro.
func (r *MovementRepository) FindByProduct(ctx context.Context, productID string) ([]domain.MovementEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + movementColumns + `
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE m.product_id = $1
		ORDER BY m.created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, productID)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar movimentos da referência", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// Delete remove SOMENTE o lançamento. O saldo da referência não é recalculado:
// apagar um movimento é uma edição do histórico, não uma transação inversa.
func (r *MovementRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return errors.NewDBError("Falha ao apagar movimento", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Movimento com ID %s não existe na base de dados.", id))
	}

	return nil
}

func collectEntries(rows *sql.Rows) ([]domain.MovementEntry, error) {
	entries := []domain.MovementEntry{}
	for rows.Next() {
		var e domain.MovementEntry
		var width, aspectRatio, rimDiameter sql.NullInt64

		err := rows.Scan(
			&e.ID,
			&e.CreatedAt,
			&e.Type,
			&e.ProductID,
			&e.Quantity,
			&e.Reason,
			&e.Note,
			&e.UserName,
			&e.DocRef,
			&width,
			&aspectRatio,
			&rimDiameter,
		)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear movimento", err)
		}

		if width.Valid {
			p := domain.TireProduct{
				Width:       int(width.Int64),
				AspectRatio: int(aspectRatio.Int64),
				RimDiameter: int(rimDiameter.Int64),
			}
			e.ProductLabel = p.FormatDimension()
		} else {
			e.ProductLabel = domain.DeletedProductLabel
		}

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar movimentos", err)
	}
	return entries, nil
}
