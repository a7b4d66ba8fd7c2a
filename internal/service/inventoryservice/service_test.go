package inventoryservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/service/inventoryservice"
)

// MockMovementRepository é uma implementação mock da interface MovementRepository.
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) CreateWithStock(ctx context.Context, movement domain.StockMovement) (domain.StockMovement, int, error) {
	args := m.Called(ctx, movement)
	return args.Get(0).(domain.StockMovement), args.Int(1), args.Error(2)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, limit int) ([]domain.MovementEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.MovementEntry), args.Error(1)
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, productID string) ([]domain.MovementEntry, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.MovementEntry), args.Error(1)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository é a fatia de leitura usada pelas estatísticas.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context, includeArchived bool) ([]domain.TireProduct, error) {
	args := m.Called(ctx, includeArchived)
	return args.Get(0).([]domain.TireProduct), args.Error(1)
}

func newService(movRepo *MockMovementRepository, prodRepo *MockProductRepository) *inventoryservice.Service {
	return inventoryservice.NewService(movRepo, prodRepo, logger.NewLogger("error"))
}

// TestCreateMovement_IN_Normaliza: uma entrada de 5 vira quantidade +5 e o
// repositório aplica sobre o saldo atual (3 -> 8).
func TestCreateMovement_IN_Normaliza(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	movRepo.On("CreateWithStock", mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity == 5 && m.Type == domain.MovementIn && m.ProductID == "p1" && m.ID != ""
	})).Return(domain.StockMovement{ID: "m1", Type: domain.MovementIn, ProductID: "p1", Quantity: 5}, 8, nil)

	stored, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementIn,
		Quantity:  5,
		Reason:    domain.ReasonReception,
		UserName:  "Karim",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, stored.Quantity)
	movRepo.AssertExpectations(t)
}

// TestCreateMovement_OUT_Normaliza: uma saída de 10 é armazenada como -10.
// O clamp do saldo é responsabilidade da persistência (testado no domínio).
func TestCreateMovement_OUT_Normaliza(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	movRepo.On("CreateWithStock", mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity == -10 && m.Type == domain.MovementOut
	})).Return(domain.StockMovement{ID: "m2", Type: domain.MovementOut, ProductID: "p1", Quantity: -10}, 0, nil)

	stored, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementOut,
		Quantity:  10,
		Reason:    domain.ReasonVente,
		UserName:  "Karim",
	})

	assert.NoError(t, err)
	assert.Equal(t, -10, stored.Quantity)
	movRepo.AssertExpectations(t)
}

// TestCreateMovement_ADJUST_PassaDelta: o delta assinado passa sem alteração.
func TestCreateMovement_ADJUST_PassaDelta(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	movRepo.On("CreateWithStock", mock.Anything, mock.MatchedBy(func(m domain.StockMovement) bool {
		return m.Quantity == -2 && m.Type == domain.MovementAdjust
	})).Return(domain.StockMovement{ID: "m3", Type: domain.MovementAdjust, ProductID: "p1", Quantity: -2}, 3, nil)

	_, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementAdjust,
		Quantity:  -2,
		Reason:    domain.ReasonCorrection,
		UserName:  "Sophie",
	})

	assert.NoError(t, err)
	movRepo.AssertExpectations(t)
}

// TestCreateMovement_QuantidadeZero é rejeitada antes de qualquer mutação.
func TestCreateMovement_QuantidadeZero(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	_, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementIn,
		Quantity:  0,
		Reason:    domain.ReasonReception,
		UserName:  "Karim",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	movRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything)
}

// TestCreateMovement_QuantidadeNegativaEmSaida: IN/OUT recebem quantidade sem
// sinal; um OUT de -3 é rejeitado na validação.
func TestCreateMovement_QuantidadeNegativaEmSaida(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	_, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementOut,
		Quantity:  -3,
		Reason:    domain.ReasonVente,
		UserName:  "Karim",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	movRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything)
}

// TestCreateMovement_MotivoInvalido: motivo fora do conjunto fixo é rejeitado.
func TestCreateMovement_MotivoInvalido(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	_, err := svc.CreateMovement(context.Background(), inventoryservice.CreateMovementInput{
		ProductID: "p1",
		Type:      domain.MovementIn,
		Quantity:  1,
		Reason:    domain.MovementReason("Inventaire"),
		UserName:  "Karim",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestDeleteMovement_NaoReverteSaldo: apagar um movimento remove o lançamento
// mas NUNCA toca no saldo da referência (teste de regressão do comportamento
// documentado de não-estorno).
func TestDeleteMovement_NaoReverteSaldo(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	movRepo.On("Delete", mock.Anything, "m1").Return(nil)

	err := svc.DeleteMovement(context.Background(), "m1")

	assert.NoError(t, err)
	movRepo.AssertExpectations(t)
	// Nenhuma escrita de estoque pode acontecer no caminho de deleção.
	movRepo.AssertNotCalled(t, "CreateWithStock", mock.Anything, mock.Anything)
}

// TestGetStats agrega sobre o conjunto ativo retornado pelo repositório.
func TestGetStats(t *testing.T) {
	movRepo := new(MockMovementRepository)
	prodRepo := new(MockProductRepository)
	svc := newService(movRepo, prodRepo)

	prodRepo.On("FindAll", mock.Anything, false).Return([]domain.TireProduct{
		{QtyOnHand: 0, ReorderThreshold: 4},
		{QtyOnHand: 3, ReorderThreshold: 4},
		{QtyOnHand: 10, ReorderThreshold: 4},
	}, nil)

	stats, err := svc.GetStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, stats.OutOfStock)
	assert.Equal(t, 1, stats.BelowThreshold)
	assert.Equal(t, 13, stats.TotalStock)
	prodRepo.AssertExpectations(t)
}

// TestBelowThreshold ordena por saldo crescente (menor estoque primeiro).
func TestBelowThreshold(t *testing.T) {
	movRepo := new(MockMovementRepository)
	prodRepo := new(MockProductRepository)
	svc := newService(movRepo, prodRepo)

	prodRepo.On("FindAll", mock.Anything, false).Return([]domain.TireProduct{
		{ID: "a", QtyOnHand: 3, ReorderThreshold: 4},
		{ID: "b", QtyOnHand: 0, ReorderThreshold: 4},
		{ID: "c", QtyOnHand: 12, ReorderThreshold: 4},
		{ID: "d", QtyOnHand: 1, ReorderThreshold: 4},
	}, nil)

	low, err := svc.BelowThreshold(context.Background())

	assert.NoError(t, err)
	ids := []string{}
	for _, p := range low {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"b", "d", "a"}, ids)
}

// TestRecentMovements usa o limite padrão de 5 quando count <= 0.
func TestRecentMovements_LimitePadrao(t *testing.T) {
	movRepo := new(MockMovementRepository)
	svc := newService(movRepo, new(MockProductRepository))

	movRepo.On("FindAll", mock.Anything, 5).Return([]domain.MovementEntry{}, nil)

	_, err := svc.RecentMovements(context.Background(), 0)

	assert.NoError(t, err)
	movRepo.AssertExpectations(t)
}
