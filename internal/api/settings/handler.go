package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"pneustock/internal/domain"
	apperror "pneustock/internal/errors"
	"pneustock/internal/pkg/logger"
)

// SettingsService define o contrato que o Handler espera da camada de serviço.
type SettingsService interface {
	Get(ctx context.Context) (domain.GarageSettings, error)
	Update(ctx context.Context, settings domain.GarageSettings) error
	AddLocation(ctx context.Context, location string) error
	RemoveLocation(ctx context.Context, location string) error
}

// Handler expõe os endpoints de configuração da oficina.
type Handler struct {
	Service SettingsService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SettingsService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// GetHandler lida com GET /v1/settings.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	current, err := h.Service.Get(r.Context())
	if err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, current, nil, http.StatusOK)
}

// UpdateHandler lida com PUT /v1/settings.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var payload domain.GarageSettings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	if err := h.Service.Update(r.Context(), payload); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, nil, nil, http.StatusNoContent)
}

// AddLocationHandler lida com POST /v1/settings/locations.
func (h *Handler) AddLocationHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Location string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respond(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), 0)
		return
	}

	if err := h.Service.AddLocation(r.Context(), payload.Location); err != nil {
		h.respond(w, r, nil, err, 0)
		return
	}

	h.respond(w, r, nil, nil, http.StatusCreated)
}

// RemoveLocationHandler lida com DELETE /v1/settings/locations/{name}.
func (h *Handler) RemoveLocationHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveLocation(r.Context(), r.PathValue("name")); err != nil {
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
		h.Logger.Error("Erro de servidor no handler de configurações.", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
