package document

import (
	"context"
	"encoding/json"
	"net/http"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// DocumentService define o contrato que o Handler espera da camada de serviço.
type DocumentService interface {
	AddDocument(ctx context.Context, doc domain.SupplierDoc) (domain.SupplierDoc, error)
	ListDocuments(ctx context.Context) ([]domain.SupplierDoc, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocStatus) error
}

// Handler expõe os endpoints de documentos de fornecedor.
type Handler struct {
	Service DocumentService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc DocumentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateHandler lida com POST /v1/documents.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var doc domain.SupplierDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	created, err := h.Service.AddDocument(r.Context(), doc)
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, created, nil, http.StatusCreated)
}

// ListHandler lida com GET /v1/documents (mais recentes primeiro).
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Service.ListDocuments(r.Context())
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, docs, nil, http.StatusOK)
}

// UpdateStatusHandler lida com PATCH /v1/documents/{id}/status.
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status domain.DocStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), r.PathValue("id"), payload.Status); err != nil {
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
		h.Logger.Error("Erro de servidor no handler de documentos.", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
