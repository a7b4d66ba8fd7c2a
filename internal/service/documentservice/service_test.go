package documentservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pneustock/internal/domain"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/service/documentservice"
)

// MockDocumentRepository é uma implementação mock da interface DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc domain.SupplierDoc) (domain.SupplierDoc, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(domain.SupplierDoc), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context) ([]domain.SupplierDoc, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SupplierDoc), args.Error(1)
}

func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// TestAddDocument_NascePendente garante que todo documento entra com status
// pending e data de recebimento preenchida.
func TestAddDocument_NascePendente(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := documentservice.NewService(repo, logger.NewLogger("error"))

	repo.On("Save", mock.Anything, mock.MatchedBy(func(d domain.SupplierDoc) bool {
		return d.Status == domain.DocPending && d.ID != "" && !d.ReceivedAt.IsZero()
	})).Return(domain.SupplierDoc{ID: "doc-1", Status: domain.DocPending}, nil)

	created, err := svc.AddDocument(context.Background(), domain.SupplierDoc{
		SupplierName: "Pneus Distrib",
		Note:         "Livraison 12 pneus hiver",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.DocPending, created.Status)
	repo.AssertExpectations(t)
}

// TestAddDocument_PreservaDataInformada não sobrescreve uma data explícita.
func TestAddDocument_PreservaDataInformada(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := documentservice.NewService(repo, logger.NewLogger("error"))

	received := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(d domain.SupplierDoc) bool {
		return d.ReceivedAt.Equal(received)
	})).Return(domain.SupplierDoc{ID: "doc-2"}, nil)

	_, err := svc.AddDocument(context.Background(), domain.SupplierDoc{
		SupplierName: "Pneus Distrib",
		ReceivedAt:   received,
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// TestAddDocument_SemFornecedor rejeita o cadastro sem nome de fornecedor.
func TestAddDocument_SemFornecedor(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := documentservice.NewService(repo, logger.NewLogger("error"))

	_, err := svc.AddDocument(context.Background(), domain.SupplierDoc{})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

// TestUpdateStatus_Invalido rejeita status fora do par pending/processed.
func TestUpdateStatus_Invalido(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := documentservice.NewService(repo, logger.NewLogger("error"))

	err := svc.UpdateStatus(context.Background(), "doc-1", domain.DocStatus("archived"))

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateStatus")
}

// TestUpdateStatus_Processa marca o documento como processado.
func TestUpdateStatus_Processa(t *testing.T) {
	repo := new(MockDocumentRepository)
	svc := documentservice.NewService(repo, logger.NewLogger("error"))

	repo.On("UpdateStatus", mock.Anything, "doc-1", domain.DocProcessed).Return(nil)

	err := svc.UpdateStatus(context.Background(), "doc-1", domain.DocProcessed)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
