package movement

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/pkg/middleware"
	"pneustock/internal/service/inventoryservice"
)

// InventoryService define o contrato que o Handler espera do livro de estoque.
type InventoryService interface {
	CreateMovement(ctx context.Context, input inventoryservice.CreateMovementInput) (domain.StockMovement, error)
	DeleteMovement(ctx context.Context, id string) error
	ListMovements(ctx context.Context) ([]domain.MovementEntry, error)
	RecentMovements(ctx context.Context, count int) ([]domain.MovementEntry, error)
	MovementsForProduct(ctx context.Context, productID string) ([]domain.MovementEntry, error)
	GetStats(ctx context.Context) (domain.InventoryStats, error)
	BelowThreshold(ctx context.Context) ([]domain.TireProduct, error)
}

// Handler agrupa os endpoints do livro de movimentos e do dashboard.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// entryView é a representação de resposta de um lançamento, com o rótulo de
// exibição do tipo já resolvido.
type entryView struct {
	domain.MovementEntry
	TypeLabel string `json:"type_label"`
}

func newEntryViews(entries []domain.MovementEntry) []entryView {
	views := []entryView{}
	for _, e := range entries {
		views = append(views, entryView{MovementEntry: e, TypeLabel: e.Type.Label()})
	}
	return views
}

// CreateHandler lida com POST /v1/movements.
// A atribuição do movimento vem das claims do token quando o payload não
// informa user_name explicitamente.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input inventoryservice.CreateMovementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	if input.UserName == "" {
		if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
			input.UserName = claims.UserName
		}
	}

	created, err := h.Service.CreateMovement(r.Context(), input)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, created, nil, http.StatusCreated)
}

// ListHandler lida com GET /v1/movements.
// Com ?limit=N retorna apenas os N mais recentes (dashboard).
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")

	var entries []domain.MovementEntry
	var err error
	if limitStr != "" {
		limit, convErr := strconv.Atoi(limitStr)
		if convErr != nil {
			h.respond(w, r, nil, apperror.NewValidationError("O parâmetro limit deve ser um número inteiro."), 0)
			return
		}
		entries, err = h.Service.RecentMovements(r.Context(), limit)
	} else {
		entries, err = h.Service.ListMovements(r.Context())
	}
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, newEntryViews(entries), nil, http.StatusOK)
}

// ByProductHandler lida com GET /v1/products/{id}/movements.
func (h *Handler) ByProductHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.MovementsForProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, newEntryViews(entries), nil, http.StatusOK)
}

// DeleteHandler lida com DELETE /v1/movements/{id}.
// Remove apenas o lançamento; o saldo da referência não é restaurado.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteMovement(r.Context(), r.PathValue("id")); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, nil, nil, http.StatusNoContent)
}

// StatsHandler lida com GET /v1/stats (agregados do dashboard).
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetStats(r.Context())
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, stats, nil, http.StatusOK)
}

// AlertsHandler lida com GET /v1/alerts: referências no limite de reposição,
// menor estoque primeiro.
func (h *Handler) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	low, err := h.Service.BelowThreshold(r.Context())
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, low, nil, http.StatusOK)
}

// respond processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		h.Logger.Error("Erro de servidor no handler de movimentos.", err)
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{"path": r.URL.Path, "status": status})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
