package productservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.TireProduct) (domain.TireProduct, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.TireProduct), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.TireProduct, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TireProduct), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, includeArchived bool) ([]domain.TireProduct, error) {
	args := m.Called(ctx, includeArchived)
	return args.Get(0).([]domain.TireProduct), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.TireProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Archive(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsProvider devolve a configuração da oficina.
type MockSettingsProvider struct {
	mock.Mock
}

func (m *MockSettingsProvider) Get(ctx context.Context) (domain.GarageSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.GarageSettings), args.Error(1)
}

func newService(repo *MockProductRepository, settings *MockSettingsProvider) *productservice.Service {
	return productservice.NewService(repo, settings, logger.NewLogger("error"))
}

func validProduct() domain.TireProduct {
	return domain.TireProduct{
		Width:       205,
		AspectRatio: 55,
		RimDiameter: 16,
		LoadIndex:   "91",
		SpeedIndex:  "V",
		Season:      domain.SeasonSummer,
		Brand:       "Michelin",
		Model:       "Primacy 4",
	}
}

// TestCreateProduct_LimitePadrao: sem limite informado, o padrão da oficina
// é aplicado ao cadastro.
func TestCreateProduct_LimitePadrao(t *testing.T) {
	repo := new(MockProductRepository)
	settings := new(MockSettingsProvider)
	svc := newService(repo, settings)

	settings.On("Get", mock.Anything).Return(domain.GarageSettings{DefaultThreshold: 4}, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.TireProduct) bool {
		return p.ReorderThreshold == 4 && p.ID != "" && !p.Archived
	})).Return(validProduct(), nil)

	_, err := svc.CreateProduct(context.Background(), validProduct())

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	settings.AssertExpectations(t)
}

// TestCreateProduct_DimensaoInvalida é rejeitada antes de persistir.
func TestCreateProduct_DimensaoInvalida(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	p := validProduct()
	p.Width = 0

	_, err := svc.CreateProduct(context.Background(), p)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestUpdateProduct_PreservaSaldo: o update de cadastro nunca toca nas
// quantidades controladas pelo livro de movimentos.
func TestUpdateProduct_PreservaSaldo(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	current := validProduct()
	current.ID = "p1"
	current.QtyOnHand = 7
	current.QtyReserved = 2

	repo.On("FindByID", mock.Anything, "p1").Return(current, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.TireProduct) bool {
		return p.QtyOnHand == 7 && p.QtyReserved == 2 && p.Brand == "Continental"
	})).Return(nil)

	update := validProduct()
	update.ID = "p1"
	update.Brand = "Continental"
	update.QtyOnHand = 999 // deve ser ignorado

	err := svc.UpdateProduct(context.Background(), update)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

// TestListProducts_BuscaDimensao: a busca "205/55R16" filtra por dimensão exata.
func TestListProducts_BuscaDimensao(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	p16 := validProduct()
	p17 := validProduct()
	p17.RimDiameter = 17

	repo.On("FindAll", mock.Anything, false).Return([]domain.TireProduct{p16, p17}, nil)

	result, err := svc.ListProducts(context.Background(), domain.ProductFilter{Search: "205/55R16"})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 16, result[0].RimDiameter)
}

// TestListProducts_BuscaParcial: "205 55" (sem diâmetro) casa os dois aros.
func TestListProducts_BuscaParcial(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	p16 := validProduct()
	p17 := validProduct()
	p17.RimDiameter = 17

	repo.On("FindAll", mock.Anything, false).Return([]domain.TireProduct{p16, p17}, nil)

	result, err := svc.ListProducts(context.Background(), domain.ProductFilter{Search: "205 55"})

	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

// TestListProducts_ComposicaoDePredicados: busca textual + estação +
// disponibilidade compõem por conjunção.
func TestListProducts_ComposicaoDePredicados(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	michelinSummer := validProduct()
	michelinSummer.QtyOnHand = 4

	michelinWinter := validProduct()
	michelinWinter.Season = domain.SeasonWinter
	michelinWinter.QtyOnHand = 4

	michelinEsgotado := validProduct()
	michelinEsgotado.QtyOnHand = 0

	continental := validProduct()
	continental.Brand = "Continental"
	continental.QtyOnHand = 4

	repo.On("FindAll", mock.Anything, false).Return(
		[]domain.TireProduct{michelinSummer, michelinWinter, michelinEsgotado, continental}, nil)

	result, err := svc.ListProducts(context.Background(), domain.ProductFilter{
		Search:        "michelin",
		Season:        domain.SeasonSummer,
		AvailableOnly: true,
	})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Michelin", result[0].Brand)
	assert.Equal(t, domain.SeasonSummer, result[0].Season)
}

// TestListProducts_FiltroEstoqueBaixo reproduz o filtro "low" do dashboard,
// sobre QtyOnHand bruto.
func TestListProducts_FiltroEstoqueBaixo(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	baixo := validProduct()
	baixo.QtyOnHand = 2
	baixo.ReorderThreshold = 4

	ok := validProduct()
	ok.QtyOnHand = 9
	ok.ReorderThreshold = 4

	repo.On("FindAll", mock.Anything, false).Return([]domain.TireProduct{baixo, ok}, nil)

	result, err := svc.ListProducts(context.Background(), domain.ProductFilter{LowOnly: true})

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 2, result[0].QtyOnHand)
}

// TestArchiveProduct delega o soft-delete ao repositório.
func TestArchiveProduct(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newService(repo, new(MockSettingsProvider))

	repo.On("Archive", mock.Anything, "p1").Return(nil)

	err := svc.ArchiveProduct(context.Background(), "p1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
