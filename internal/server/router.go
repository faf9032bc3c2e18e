package server

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/arganhr/backoffice/internal/domain"
	"github.com/arganhr/backoffice/internal/handlers"
	"github.com/arganhr/backoffice/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ClientHandler      *handlers.ClientHandler
	ContractHandler    *handlers.ContractHandler
	CaseHandler        *handlers.CaseHandler
	InteractionHandler *handlers.InteractionHandler
	AdminHandler       *handlers.AdminHandler
	DashboardHandler   *handlers.DashboardHandler
	TracingEnabled     bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("backoffice"))
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.POST("/login", cfg.AuthHandler.Login)
	api.POST("/refresh", cfg.AuthHandler.Refresh)

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/me", cfg.AdminHandler.Me)
	protected.POST("/me/password", cfg.AdminHandler.ChangePassword)

	// Clients
	protected.POST("/clients", cfg.ClientHandler.Create)
	protected.GET("/clients", cfg.ClientHandler.List)
	protected.GET("/clients/sectors", cfg.ClientHandler.UniqueSectors)
	protected.GET("/clients/:id", cfg.ClientHandler.Get)
	protected.PATCH("/clients/:id", cfg.ClientHandler.Update)
	protected.DELETE("/clients/:id", cfg.ClientHandler.Deactivate)
	protected.POST("/clients/:id/contacts", cfg.ClientHandler.AddContact)
	protected.DELETE("/clients/:id/contacts/:contactID", cfg.ClientHandler.RemoveContact)
	protected.POST("/clients/:id/addresses", cfg.ClientHandler.AddAddress)
	protected.DELETE("/clients/:id/addresses/:addressID", cfg.ClientHandler.RemoveAddress)
	protected.POST("/clients/:id/audits", cfg.ClientHandler.AddAudit)
	protected.DELETE("/clients/:id/audits/:auditID", cfg.ClientHandler.RemoveAudit)

	// Contracts
	protected.POST("/clients/:id/contracts", cfg.ContractHandler.Create)
	protected.GET("/clients/:id/contracts", cfg.ContractHandler.ListByClient)
	protected.GET("/clients/:id/contracts/:contractID", cfg.ContractHandler.Get)
	protected.PATCH("/clients/:id/contracts/:contractID", cfg.ContractHandler.Update)
	protected.DELETE("/clients/:id/contracts/:contractID", cfg.ContractHandler.Delete)
	protected.POST("/clients/:id/contracts/:contractID/activate", cfg.ContractHandler.SetActive)
	protected.POST("/clients/:id/contracts/:contractID/finalize", cfg.ContractHandler.Finalize)

	// Cases
	protected.POST("/clients/:id/cases", cfg.CaseHandler.Create)
	protected.GET("/clients/:id/cases", cfg.CaseHandler.ListByClient)
	protected.GET("/cases/:caseID", cfg.CaseHandler.Get)
	protected.PATCH("/cases/:caseID", cfg.CaseHandler.Update)
	protected.DELETE("/cases/:caseID", cfg.CaseHandler.Delete)
	protected.POST("/cases/:caseID/files", cfg.CaseHandler.AttachFile)
	protected.GET("/cases/:caseID/files", cfg.CaseHandler.ListFiles)

	// Interactions
	protected.POST("/cases/:caseID/interactions", cfg.InteractionHandler.Add)
	protected.GET("/cases/:caseID/interactions", cfg.InteractionHandler.ListByCase)
	protected.GET("/interactions/:interactionID", cfg.InteractionHandler.Get)
	protected.PATCH("/interactions/:interactionID", cfg.InteractionHandler.Update)
	protected.POST("/interactions/:interactionID/active-action", cfg.InteractionHandler.SetActiveAction)
	protected.DELETE("/interactions/:interactionID/active-action", cfg.InteractionHandler.UnsetActiveAction)

	// Admin management is restricted to superadmins.
	admins := protected.Group("/admins")
	admins.Use(cfg.AuthMiddleware.RequireRole(domain.AdminRoleSuperadmin))
	admins.POST("", cfg.AdminHandler.Create)
	admins.GET("", cfg.AdminHandler.List)
	admins.GET("/:id", cfg.AdminHandler.Get)
	admins.PATCH("/:id", cfg.AdminHandler.Update)
	admins.DELETE("/:id", cfg.AdminHandler.Deactivate)

	// Dashboard
	protected.GET("/dashboard/summary", cfg.DashboardHandler.Summary)

	return router
}

func allowedOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
