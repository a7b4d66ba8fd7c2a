package productservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/search"
)

// ProductRepository define o contrato que o Serviço de Referências espera da
// camada de Persistência.
type ProductRepository interface {
	Save(ctx context.Context, product domain.TireProduct) (domain.TireProduct, error)
	FindByID(ctx context.Context, id string) (domain.TireProduct, error)
	FindAll(ctx context.Context, includeArchived bool) ([]domain.TireProduct, error)
	Update(ctx context.Context, product domain.TireProduct) error
	Archive(ctx context.Context, id string) error
}

// SettingsProvider fornece a configuração da oficina (limite de reposição
// padrão para novas referências).
type SettingsProvider interface {
	Get(ctx context.Context) (domain.GarageSettings, error)
}

// Service implementa a lógica de negócio do catálogo de referências,
// incluindo o lado de leitura da busca (interpretação + casamento).
type Service struct {
	repo     ProductRepository
	settings SettingsProvider
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Referências.
func NewService(repo ProductRepository, settings SettingsProvider, log logger.Logger) *Service {
	return &Service{repo: repo, settings: settings, logger: log}
}

// CreateProduct valida e persiste uma nova referência. Quando o chamador não
// informa um limite de reposição, o padrão da oficina é aplicado.
func (s *Service) CreateProduct(ctx context.Context, product domain.TireProduct) (domain.TireProduct, error) {
	if err := validate(product); err != nil {
		return domain.TireProduct{}, err
	}

	if product.ReorderThreshold == 0 {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			// Configuração indisponível não impede o cadastro.
			s.logger.Warn("Falha ao carregar configurações; usando limite padrão do domínio.", map[string]interface{}{"err": err.Error()})
			cfg = domain.DefaultSettings()
		}
		product.ReorderThreshold = cfg.DefaultThreshold
	}

	product.ID = uuid.NewString()
	product.Archived = false
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	stored, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error("Falha ao criar referência.", err)
		return domain.TireProduct{}, err
	}

	s.logger.Info("Referência criada.", map[string]interface{}{
		"product_id": stored.ID,
		"dimension":  stored.FormatDimension(),
		"brand":      stored.Brand,
	})
	return stored, nil
}

// GetProductByID busca uma referência pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.TireProduct, error) {
	if id == "" {
		return domain.TireProduct{}, apperror.NewValidationError("O ID da referência é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateProduct valida e atualiza os campos de uma referência existente.
// O saldo de estoque NÃO é editado por aqui: quantidades mudam apenas via
// movimentos no livro.
func (s *Service) UpdateProduct(ctx context.Context, product domain.TireProduct) error {
	if product.ID == "" {
		return apperror.NewValidationError("O ID da referência é obrigatório.")
	}
	if err := validate(product); err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return err
	}

	// Preserva os campos controlados pelo livro e pelo arquivamento.
	product.QtyOnHand = current.QtyOnHand
	product.QtyReserved = current.QtyReserved
	product.Archived = current.Archived
	product.CreatedAt = current.CreatedAt

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Falha ao atualizar referência.", err)
		return err
	}

	return nil
}

// ArchiveProduct marca a referência como arquivada (soft-delete). Ela sai das
// listagens ativas e das estatísticas, mas continua alvo válido do histórico
// de movimentos.
func (s *Service) ArchiveProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O ID da referência é obrigatório.")
	}

	if err := s.repo.Archive(ctx, id); err != nil {
		s.logger.Error("Falha ao arquivar referência.", err)
		return err
	}

	s.logger.Info("Referência arquivada.", map[string]interface{}{"product_id": id})
	return nil
}

// ListProducts carrega o conjunto de referências e aplica o filtro em
// memória: a busca textual/dimensional interpretada pelo pacote search,
// composta por conjunção (AND) com os predicados de estação, disponibilidade
// e estoque baixo.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.TireProduct, error) {
	products, err := s.repo.FindAll(ctx, filter.IncludeArchived)
	if err != nil {
		return nil, err
	}

	query := search.Parse(filter.Search)

	result := []domain.TireProduct{}
	for _, p := range products {
		if !query.Matches(p) {
			continue
		}
		if filter.Season != "" && p.Season != filter.Season {
			continue
		}
		if filter.AvailableOnly && p.Available() <= 0 {
			continue
		}
		if filter.LowOnly && p.QtyOnHand > p.ReorderThreshold {
			continue
		}
		result = append(result, p)
	}

	return result, nil
}

// validate aplica as regras básicas de cadastro de uma referência.
func validate(p domain.TireProduct) error {
	if p.Width <= 0 || p.AspectRatio <= 0 || p.RimDiameter <= 0 {
		return apperror.NewValidationError("A dimensão (largura/série/diâmetro) deve ser positiva.")
	}
	if !p.Season.IsValid() {
		return apperror.NewValidationError("Estação inválida. Use summer, winter ou allseason.")
	}
	if p.Brand == "" {
		return apperror.NewValidationError("A marca é obrigatória.")
	}
	if p.ReorderThreshold < 0 {
		return apperror.NewValidationError("O limite de reposição não pode ser negativo.")
	}
	if p.QtyOnHand < 0 || p.QtyReserved < 0 {
		return apperror.NewValidationError("As quantidades não podem ser negativas.")
	}
	return nil
}
