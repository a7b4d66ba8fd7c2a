package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"pneustock/internal/api/document"
	"pneustock/internal/api/movement"
	"pneustock/internal/api/product"
	"pneustock/internal/api/settings"
	"pneustock/internal/api/user"
	"pneustock/internal/domain"
	"pneustock/internal/pkg/cache"
	"pneustock/internal/pkg/middleware"
)

// Deps agrupa tudo que o roteador precisa receber por injeção de dependências.
type Deps struct {
	ProductHandler  *product.Handler
	MovementHandler *movement.Handler
	DocumentHandler *document.Handler
	SettingsHandler *settings.Handler
	UserHandler     *user.Handler

	TokenService middleware.TokenService
	CacheClient  cache.Client

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Usamos o ServeMux padrão do net/http com os padrões "MÉTODO /caminho"
// do Go 1.22, que já cobrem variáveis de rota sem mux de terceiros.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(d.TokenService)
	ownerOnly := middleware.PermissionMiddleware(domain.RoleOwner)

	// --- Health check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// --- Autenticação ---
	mux.HandleFunc("POST /v1/auth/register", d.UserHandler.RegisterHandler)
	mux.HandleFunc("POST /v1/auth/login", d.UserHandler.LoginHandler)

	// --- Referências de pneus ---
	mux.HandleFunc("GET /v1/products", d.ProductHandler.ListHandler)
	mux.HandleFunc("GET /v1/products/{id}", d.ProductHandler.GetHandler)
	mux.HandleFunc("POST /v1/products", auth(d.ProductHandler.CreateHandler))
	mux.HandleFunc("PUT /v1/products/{id}", auth(d.ProductHandler.UpdateHandler))
	mux.HandleFunc("DELETE /v1/products/{id}", auth(d.ProductHandler.ArchiveHandler))

	// --- Livro de movimentos ---
	mux.HandleFunc("GET /v1/movements", d.MovementHandler.ListHandler)
	mux.HandleFunc("POST /v1/movements", auth(d.MovementHandler.CreateHandler))
	mux.HandleFunc("DELETE /v1/movements/{id}", auth(d.MovementHandler.DeleteHandler))
	mux.HandleFunc("GET /v1/products/{id}/movements", d.MovementHandler.ByProductHandler)

	// --- Dashboard ---
	mux.HandleFunc("GET /v1/stats", d.MovementHandler.StatsHandler)
	mux.HandleFunc("GET /v1/alerts", d.MovementHandler.AlertsHandler)

	// --- Documentos de fornecedor ---
	mux.HandleFunc("GET /v1/documents", auth(d.DocumentHandler.ListHandler))
	mux.HandleFunc("POST /v1/documents", auth(d.DocumentHandler.CreateHandler))
	mux.HandleFunc("PATCH /v1/documents/{id}/status", auth(d.DocumentHandler.UpdateStatusHandler))

	// --- Configurações da oficina (escrita restrita ao proprietário) ---
	mux.HandleFunc("GET /v1/settings", auth(d.SettingsHandler.GetHandler))
	mux.HandleFunc("PUT /v1/settings", auth(ownerOnly(d.SettingsHandler.UpdateHandler)))
	mux.HandleFunc("POST /v1/settings/locations", auth(ownerOnly(d.SettingsHandler.AddLocationHandler)))
	mux.HandleFunc("DELETE /v1/settings/locations/{name}", auth(ownerOnly(d.SettingsHandler.RemoveLocationHandler)))

	// Limitador global de requisições, apoiado no Redis.
	limited := middleware.RateLimiter(d.CacheClient, d.RateLimitMaxRequests, d.RateLimitPeriod)(mux)

	return limited
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
