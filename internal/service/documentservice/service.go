package documentservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// DocumentRepository define o contrato que o Serviço de Documentos espera da
// camada de Persistência.
type DocumentRepository interface {
	Save(ctx context.Context, doc domain.SupplierDoc) (domain.SupplierDoc, error)
	FindAll(ctx context.Context) ([]domain.SupplierDoc, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocStatus) error
}

// Service implementa a lógica (mínima) dos documentos de fornecedor:
// cadastro e alternância de status.
type Service struct {
	repo   DocumentRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Documentos.
func NewService(repo DocumentRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// AddDocument cadastra um documento recebido. Todo documento nasce pendente.
func (s *Service) AddDocument(ctx context.Context, doc domain.SupplierDoc) (domain.SupplierDoc, error) {
	if doc.SupplierName == "" {
		return domain.SupplierDoc{}, apperror.NewValidationError("O nome do fornecedor é obrigatório.")
	}
	if doc.ReceivedAt.IsZero() {
		doc.ReceivedAt = time.Now()
	}

	doc.ID = uuid.NewString()
	doc.Status = domain.DocPending

	stored, err := s.repo.Save(ctx, doc)
	if err != nil {
		s.logger.Error("Falha ao cadastrar documento.", err)
		return domain.SupplierDoc{}, err
	}

	s.logger.Info("Documento cadastrado.", map[string]interface{}{
		"doc_id":   stored.ID,
		"supplier": stored.SupplierName,
	})
	return stored, nil
}

// ListDocuments retorna os documentos por data de recebimento, mais recentes
// primeiro.
func (s *Service) ListDocuments(ctx context.Context) ([]domain.SupplierDoc, error) {
	return s.repo.FindAll(ctx)
}

// UpdateStatus alterna o status de processamento (pending <-> processed).
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.DocStatus) error {
	if id == "" {
		return apperror.NewValidationError("O ID do documento é obrigatório.")
	}
	if !status.IsValid() {
		return apperror.NewValidationError("Status de documento inválido. Use pending ou processed.")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("Falha ao atualizar status do documento.", err)
		return err
	}

	return nil
}
