package inventoryservice

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// MovementRepository define o contrato que o Serviço de Inventário espera da
// camada de Persistência para o livro de movimentos.
type MovementRepository interface {
	// CreateWithStock persiste o movimento e o novo saldo da referência como
	// uma unidade: ambos ficam visíveis juntos ou nada muda.
	CreateWithStock(ctx context.Context, movement domain.StockMovement) (domain.StockMovement, int, error)
	FindAll(ctx context.Context, limit int) ([]domain.MovementEntry, error)
	FindByProduct(ctx context.Context, productID string) ([]domain.MovementEntry, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository é a fatia de leitura de referências usada pelas
// estatísticas e alertas.
type ProductRepository interface {
	FindAll(ctx context.Context, includeArchived bool) ([]domain.TireProduct, error)
}

// Service implementa o livro de estoque: aplica movimentos às quantidades,
// deriva estados e calcula as estatísticas agregadas.
type Service struct {
	movements MovementRepository
	products  ProductRepository
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Inventário.
func NewService(movements MovementRepository, products ProductRepository, log logger.Logger) *Service {
	return &Service{movements: movements, products: products, logger: log}
}

// CreateMovementInput é o payload de criação de um movimento.
type CreateMovementInput struct {
	ProductID string                `json:"product_id"`
	Type      domain.MovementType   `json:"type"`
	Quantity  int                   `json:"quantity"`
	Reason    domain.MovementReason `json:"reason"`
	UserName  string                `json:"user_name"`
	Note      string                `json:"note"`
	DocRef    string                `json:"doc_ref"`
}

// CreateMovement valida a entrada, normaliza o sinal da quantidade e registra
// o lançamento junto com o novo saldo da referência.
//
// Convenção de sinal: IN vira +|q|, OUT vira -|q| e ADJUST mantém o delta
// assinado do chamador. O saldo resultante sofre clamp em zero: uma saída
// maior que o estoque é tolerada, não rejeitada.
func (s *Service) CreateMovement(ctx context.Context, input CreateMovementInput) (domain.StockMovement, error) {
	// Validação: rejeitar antes de qualquer mutação.
	if input.ProductID == "" {
		return domain.StockMovement{}, apperror.NewValidationError("A referência do movimento é obrigatória.")
	}
	if !input.Type.IsValid() {
		return domain.StockMovement{}, apperror.NewValidationError("Tipo de movimento inválido. Use IN, OUT ou ADJUST.")
	}
	if !input.Reason.IsValid() {
		return domain.StockMovement{}, apperror.NewValidationError("Motivo de movimento fora do conjunto permitido.")
	}
	if input.UserName == "" {
		return domain.StockMovement{}, apperror.NewValidationError("O nome do usuário é obrigatório.")
	}
	if input.Quantity == 0 {
		return domain.StockMovement{}, apperror.NewValidationError("A quantidade do movimento não pode ser zero.")
	}
	// IN/OUT recebem quantidade sem sinal; só ADJUST carrega delta negativo.
	if input.Type != domain.MovementAdjust && input.Quantity < 0 {
		return domain.StockMovement{}, apperror.NewValidationError("A quantidade deve ser positiva para movimentos IN/OUT.")
	}

	movement := domain.StockMovement{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Type:      input.Type,
		ProductID: input.ProductID,
		Quantity:  domain.NormalizeQuantity(input.Type, input.Quantity),
		Reason:    input.Reason,
		Note:      input.Note,
		UserName:  input.UserName,
		DocRef:    input.DocRef,
	}

	stored, newQty, err := s.movements.CreateWithStock(ctx, movement)
	if err != nil {
		s.logger.Error("Falha ao registrar movimento.", err)
		return domain.StockMovement{}, err
	}

	s.logger.Info("Movimento criado.", map[string]interface{}{
		"movement_id": stored.ID,
		"product_id":  stored.ProductID,
		"type":        string(stored.Type),
		"quantity":    stored.Quantity,
		"new_qty":     newQty,
		"user":        stored.UserName,
	})
	return stored, nil
}

// DeleteMovement apaga um lançamento do livro SEM recalcular o saldo da
// referência. É uma edição do histórico, não um estorno: quem chama não deve
// assumir que a deleção desfaz o efeito do movimento.
func (s *Service) DeleteMovement(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewValidationError("O ID do movimento é obrigatório.")
	}

	if err := s.movements.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao apagar movimento.", err)
		return err
	}

	s.logger.Info("Movimento apagado (saldo da referência inalterado).", map[string]interface{}{"movement_id": id})
	return nil
}

// ListMovements retorna o livro completo, mais recentes primeiro.
func (s *Service) ListMovements(ctx context.Context) ([]domain.MovementEntry, error) {
	return s.movements.FindAll(ctx, 0)
}

// RecentMovements retorna os últimos count movimentos para o dashboard.
func (s *Service) RecentMovements(ctx context.Context, count int) ([]domain.MovementEntry, error) {
	if count <= 0 {
		count = 5
	}
	return s.movements.FindAll(ctx, count)
}

// MovementsForProduct retorna o histórico de uma referência.
func (s *Service) MovementsForProduct(ctx context.Context, productID string) ([]domain.MovementEntry, error) {
	if productID == "" {
		return nil, apperror.NewValidationError("A referência é obrigatória.")
	}
	return s.movements.FindByProduct(ctx, productID)
}

// GetStats calcula as estatísticas agregadas sobre o conjunto ativo.
func (s *Service) GetStats(ctx context.Context) (domain.InventoryStats, error) {
	products, err := s.products.FindAll(ctx, false)
	if err != nil {
		return domain.InventoryStats{}, err
	}
	return domain.ComputeStats(products), nil
}

// BelowThreshold lista as referências ativas com qty_on_hand <= limite de
// reposição, em ordem crescente de saldo (menor estoque primeiro). Essa é a
// ordem que os alertas reproduzem.
func (s *Service) BelowThreshold(ctx context.Context) ([]domain.TireProduct, error) {
	products, err := s.products.FindAll(ctx, false)
	if err != nil {
		return nil, err
	}

	low := []domain.TireProduct{}
	for _, p := range products {
		if p.QtyOnHand <= p.ReorderThreshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].QtyOnHand < low[j].QtyOnHand
	})

	return low, nil
}
