package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/arganhr/backoffice/internal/config"
	"github.com/arganhr/backoffice/internal/data/repos"
	"github.com/arganhr/backoffice/internal/db"
	"github.com/arganhr/backoffice/internal/handlers"
	"github.com/arganhr/backoffice/internal/middleware"
	"github.com/arganhr/backoffice/internal/observability"
	"github.com/arganhr/backoffice/internal/platform/envutil"
	"github.com/arganhr/backoffice/internal/platform/logger"
	"github.com/arganhr/backoffice/internal/platform/storage"
	"github.com/arganhr/backoffice/internal/server"
	"github.com/arganhr/backoffice/internal/services"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Env
	log.Info("Loading environment variables...")
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	officeCode := envutil.GetEnv("OFFICE_CODE", "1", log)
	pricingFile := envutil.GetEnv("PRICING_FILE", "", log)
	port := envutil.GetEnv("PORT", "8080", log)

	// Tracing
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "backoffice",
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     envutil.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	// Pricing
	pricing, err := config.LoadPricing(pricingFile, log)
	if err != nil {
		log.Fatal("Pricing config load failed", "error", err)
	}

	// Repos
	log.Info("Setting up repos...")
	repoSet := repos.NewSet(gdb, log)

	// Optional infrastructure; the API degrades gracefully without it.
	var cache *redis.Client
	if addr := envutil.GetEnv("REDIS_ADDR", "", log); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: envutil.GetEnv("REDIS_PASSWORD", "", log),
		})
		if err := cache.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, dashboard caching disabled", "error", err)
			cache = nil
		}
	}
	store, err := storage.NewBucketStore(ctx, log)
	if err != nil {
		log.Warn("Bucket store init failed, file uploads disabled", "error", err)
		store = nil
	}

	// Services
	log.Info("Setting up services...")
	avatarService := services.NewAvatarService(log, store)
	authService := services.NewAuthService(
		gdb, log, repoSet.Admin, repoSet.Token,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	clientService := services.NewClientService(gdb, log, repoSet.Client, repoSet.Contact, repoSet.Address, repoSet.Audit, pricing)
	contractService := services.NewContractService(gdb, log, repoSet.Contract, repoSet.Client, pricing, officeCode)
	caseService := services.NewCaseService(gdb, log, repoSet.Case, repoSet.Interaction, repoSet.File, repoSet.Client, store)
	interactionService := services.NewInteractionService(gdb, log, repoSet.Interaction, repoSet.Case)
	adminService := services.NewAdminService(gdb, log, repoSet.Admin, avatarService)
	dashboardService := services.NewDashboardService(gdb, log, repoSet.Client, repoSet.Case, repoSet.Contract, cache)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	contractHandler := handlers.NewContractHandler(contractService)
	caseHandler := handlers.NewCaseHandler(caseService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	adminHandler := handlers.NewAdminHandler(adminService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		ClientHandler:      clientHandler,
		ContractHandler:    contractHandler,
		CaseHandler:        caseHandler,
		InteractionHandler: interactionHandler,
		AdminHandler:       adminHandler,
		DashboardHandler:   dashboardHandler,
		TracingEnabled:     shutdownOTel != nil,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
