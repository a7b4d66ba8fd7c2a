package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pneustock/config"
	"pneustock/internal/pkg/cache"
	"pneustock/internal/pkg/database"
	"pneustock/internal/pkg/logger"
	"pneustock/internal/pkg/token"

	"pneustock/internal/api/document"
	"pneustock/internal/api/movement"
	"pneustock/internal/api/product"
	"pneustock/internal/api/router"
	"pneustock/internal/api/settings"
	"pneustock/internal/api/user"
	"pneustock/internal/repository/documentrepo"
	"pneustock/internal/repository/movementrepo"
	"pneustock/internal/repository/productrepo"
	"pneustock/internal/repository/settingsrepo"
	"pneustock/internal/repository/userrepo"
	"pneustock/internal/service/documentservice"
	"pneustock/internal/service/inventoryservice"
	"pneustock/internal/service/productservice"
	"pneustock/internal/service/settingsservice"
	"pneustock/internal/service/userservice"
)

func main() {
	stdlog.Println("⚡ Inicializando serviço PneuStock...")

	// O godotenv.Load() procura por um arquivo chamado .env na raiz.
	// Se não existir, as variáveis podem vir do ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// --- Infraestrutura ---

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// --- Injeção de dependências: Repository -> Service -> Handler ---

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	movementRepo := movementrepo.NewMovementRepository(db, cacheClient, cfg.DBTimeout, log)
	documentRepo := documentrepo.NewDocumentRepository(db, cfg.DBTimeout)
	settingsRepo := settingsrepo.NewSettingsRepository(db, cfg.DBTimeout)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	settingsSvc := settingsservice.NewService(settingsRepo, log)
	productSvc := productservice.NewService(productRepo, settingsSvc, log)
	inventorySvc := inventoryservice.NewService(movementRepo, productRepo, log)
	documentSvc := documentservice.NewService(documentRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc)
	log.Debug("Serviços inicializados.", nil)

	deps := router.Deps{
		ProductHandler:  product.NewHandler(productSvc, log),
		MovementHandler: movement.NewHandler(inventorySvc, log),
		DocumentHandler: document.NewHandler(documentSvc, log),
		SettingsHandler: settings.NewHandler(settingsSvc, log),
		UserHandler:     user.NewHandler(userSvc, log),

		TokenService: tokenSvc,
		CacheClient:  cacheClient,

		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Execução e graceful shutdown ---

	go func() {
		log.Info("Servidor PneuStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
