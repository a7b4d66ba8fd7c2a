package product

import (
	"context"
	"encoding/json"
	"net/http"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, product domain.TireProduct) (domain.TireProduct, error)
	GetProductByID(ctx context.Context, id string) (domain.TireProduct, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.TireProduct, error)
	UpdateProduct(ctx context.Context, product domain.TireProduct) error
	ArchiveProduct(ctx context.Context, id string) error
}

// Handler agrupa os endpoints de referências de pneu.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// productView é a representação de resposta: a referência mais os campos
// derivados que o dashboard exibe.
type productView struct {
	domain.TireProduct
	Dimension   string             `json:"dimension"`
	FullSpec    string             `json:"full_spec"`
	SeasonLabel string             `json:"season_label"`
	Available   int                `json:"available"`
	Status      domain.StockStatus `json:"status"`
}

func newProductView(p domain.TireProduct) productView {
	return productView{
		TireProduct: p,
		Dimension:   p.FormatDimension(),
		FullSpec:    p.FormatFullSpec(),
		SeasonLabel: p.Season.Label(),
		Available:   p.Available(),
		Status:      p.StockStatus(),
	}
}

// CreateHandler lida com POST /v1/products.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var product domain.TireProduct
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), product)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, newProductView(created), nil, http.StatusCreated)
}

// ListHandler lida com GET /v1/products.
// Query params: q (busca), season, available=true, low=true, archived=true.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ProductFilter{
		Search:          q.Get("q"),
		Season:          domain.Season(q.Get("season")),
		AvailableOnly:   q.Get("available") == "true",
		LowOnly:         q.Get("low") == "true",
		IncludeArchived: q.Get("archived") == "true",
	}

	products, err := h.Service.ListProducts(r.Context(), filter)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	views := []productView{}
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	h.respond(w, r, views, nil, http.StatusOK)
}

// GetHandler lida com GET /v1/products/{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, newProductView(product), nil, http.StatusOK)
}

// UpdateHandler lida com PUT /v1/products/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var product domain.TireProduct
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}
	product.ID = r.PathValue("id")

	if err := h.Service.UpdateProduct(r.Context(), product); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, nil, nil, http.StatusNoContent)
}

// ArchiveHandler lida com DELETE /v1/products/{id} (soft-delete).
func (h *Handler) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveProduct(r.Context(), r.PathValue("id")); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, nil, nil, http.StatusNoContent)
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
		h.Logger.Error("Erro de servidor no handler de referências.", err)
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{"path": r.URL.Path, "status": status})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
