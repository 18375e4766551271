package handler

import (
	"pix-recebidos/internal/adapter/http/middleware"
	"pix-recebidos/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ReconcileSvc   ports.ReconcileService
	AuthSvc        ports.AuthService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Shallow liveness + service identity
	r.GET("/", Liveness)
	// Deep health check (PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Provider-facing webhook. Authentication happens inside the pipeline so
	// that rejected deliveries and audited ones follow the same code path.
	webhookHandler := NewWebhookHandler(deps.ReconcileSvc, deps.Logger)
	r.POST("/webhook/pix", webhookHandler.Receive)

	// API v1 routes
	v1 := r.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", authHandler.Login)

	// --- JWT-authenticated routes (operator dashboard) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)

	recebidos := v1.Group("/recebidos", jwtAuth)
	{
		recebidos.GET("", dashboardHandler.ListRecebidos)
		recebidos.GET("/stats", dashboardHandler.GetStats)
	}

	return r
}
