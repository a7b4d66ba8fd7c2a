package documentrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pneustock/internal/domain"
	"pneustock/internal/errors"
)

// DocumentRepository é a camada de acesso a dados dos documentos de fornecedor.
type DocumentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewDocumentRepository cria e retorna uma nova instância do Repositório.
func NewDocumentRepository(db *sql.DB, dbTimeout time.Duration) *DocumentRepository {
	return &DocumentRepository{DB: db, DBTimeout: dbTimeout}
}

// Save persiste um novo documento de fornecedor.
func (r *DocumentRepository) Save(ctx context.Context, doc domain.SupplierDoc) (domain.SupplierDoc, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `
		INSERT INTO documents (id, supplier_name, received_at, note, file_name, status)
		VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		doc.ID,
		doc.SupplierName,
		doc.ReceivedAt,
		doc.Note,
		doc.FileName,
		doc.Status,
	)
	if err != nil {
		return domain.SupplierDoc{}, errors.NewDBError("Falha ao inserir documento", err)
	}

	return doc, nil
}

// FindAll lista os documentos por data de recebimento, mais recentes primeiro.
func (r *DocumentRepository) FindAll(ctx context.Context) ([]domain.SupplierDoc, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT id, supplier_name, received_at, note, file_name, status
		FROM documents
		ORDER BY received_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		return nil, errors.NewDBError("Falha ao listar documentos", err)
	}
	defer rows.Close()

	docs := []domain.SupplierDoc{}
	for rows.Next() {
		var d domain.SupplierDoc
		if err := rows.Scan(&d.ID, &d.SupplierName, &d.ReceivedAt, &d.Note, &d.FileName, &d.Status); err != nil {
			return nil, errors.NewDBError("Falha ao mapear documento", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar documentos", err)
	}

	return docs, nil
}

// UpdateStatus alterna o status de processamento de um documento.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocStatus) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE documents SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return errors.NewDBError("Falha ao atualizar status do documento", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Documento com ID %s não existe na base de dados.", id))
	}

	return nil
}
