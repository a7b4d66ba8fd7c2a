package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pneustock/internal/domain"
	"pneustock/internal/errors"
	"pneustock/internal/pkg/cache"
	"pneustock/internal/pkg/logger"
)

// ProductRepository é a camada de acesso a dados das referências de pneu.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// Chave de cache para referências individuais.
const productCacheKey = "product:%s"

const productColumns = `id, width, aspect_ratio, rim_diameter, load_index, speed_index,
	season, brand, model, sku_supplier, location, reorder_threshold,
	qty_on_hand, qty_reserved, archived, created_at, updated_at`

// Save persiste uma nova referência no banco de dados.
func (r *ProductRepository) Save(ctx context.Context, product domain.TireProduct) (domain.TireProduct, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `
		INSERT INTO products (id, width, aspect_ratio, rim_diameter, load_index, speed_index,
			season, brand, model, sku_supplier, location, reorder_threshold,
			qty_on_hand, qty_reserved, archived, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		product.ID,
		product.Width,
		product.AspectRatio,
		product.RimDiameter,
		product.LoadIndex,
		product.SpeedIndex,
		product.Season,
		product.Brand,
		product.Model,
		product.SKUSupplier,
		product.Location,
		product.ReorderThreshold,
		product.QtyOnHand,
		product.QtyReserved,
		product.Archived,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir referência no DB.", err)
		return domain.TireProduct{}, errors.NewDBError("Falha ao inserir referência", err)
	}

	return product, nil
}

// FindByID busca uma referência pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.TireProduct, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.TireProduct

	// 1. Tentar obter do Cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &product) == nil {
			return product, nil
		}
		// Desserialização falhou: segue para o DB.
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (conexão perdida, etc.): logar e seguir para o DB.
		r.logger.Warn("Falha ao ler referência do cache.", map[string]interface{}{"id": id, "err": err.Error()})
	}

	// 2. Busca no Banco de Dados (PostgreSQL)
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, id)
	product, err = scanProduct(row)
	if err == sql.ErrNoRows {
		return domain.TireProduct{}, errors.NewNotFoundError(fmt.Sprintf("Referência com ID %s não existe na base de dados.", id))
	}
	if err != nil {
		return domain.TireProduct{}, errors.NewDBError("Falha ao buscar referência no DB", err)
	}

	// 3. Popular o cache para futuras requisições (falha de cache não é fatal).
	if productJSON, marshalErr := json.Marshal(product); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, productJSON, r.CacheTTL)
	}

	return product, nil
}

// FindAll lista as referências, mais recentes primeiro.
// Por padrão exclui as arquivadas; includeArchived=true traz tudo.
func (r *ProductRepository) FindAll(ctx context.Context, includeArchived bool) ([]domain.TireProduct, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products`
	if !includeArchived {
		query += ` WHERE archived = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar referências", err)
	}
	defer rows.Close()

	products := []domain.TireProduct{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, errors.NewDBError("Falha ao mapear referência", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar referências", err)
	}

	return products, nil
}

// Update atualiza os campos de uma referência e invalida o cache.
func (r *ProductRepository) Update(ctx context.Context, product domain.TireProduct) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `
		UPDATE products
		SET width = $2, aspect_ratio = $3, rim_diameter = $4, load_index = $5,
			speed_index = $6, season = $7, brand = $8, model = $9, sku_supplier = $10,
			location = $11, reorder_threshold = $12, qty_on_hand = $13,
			qty_reserved = $14, archived = $15, updated_at = $16
		WHERE id = $1`

	result, err := r.DB.ExecContext(ctxTimeout, updateSQL,
		product.ID,
		product.Width,
		product.AspectRatio,
		product.RimDiameter,
		product.LoadIndex,
		product.SpeedIndex,
		product.Season,
		product.Brand,
		product.Model,
		product.SKUSupplier,
		product.Location,
		product.ReorderThreshold,
		product.QtyOnHand,
		product.QtyReserved,
		product.Archived,
		time.Now(),
	)
	if err != nil {
		return errors.NewDBError("Falha ao atualizar referência", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Referência com ID %s não existe na base de dados.", product.ID))
	}

	r.invalidate(ctxTimeout, product.ID)
	return nil
}

// Archive marca a referência como arquivada (soft-delete) e invalida o cache.
// O registro permanece como alvo válido dos movimentos históricos.
func (r *ProductRepository) Archive(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE products SET archived = TRUE, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return errors.NewDBError("Falha ao arquivar referência", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Referência com ID %s não existe na base de dados.", id))
	}

	r.invalidate(ctxTimeout, id)
	return nil
}

// invalidate remove a referência do cache após uma escrita.
func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, fmt.Sprintf(productCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache da referência.", map[string]interface{}{"id": id, "err": err.Error()})
	}
}

// scanner cobre *sql.Row e *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s scanner) (domain.TireProduct, error) {
	var p domain.TireProduct
	err := s.Scan(
		&p.ID,
		&p.Width,
		&p.AspectRatio,
		&p.RimDiameter,
		&p.LoadIndex,
		&p.SpeedIndex,
		&p.Season,
		&p.Brand,
		&p.Model,
		&p.SKUSupplier,
		&p.Location,
		&p.ReorderThreshold,
		&p.QtyOnHand,
		&p.QtyReserved,
		&p.Archived,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
