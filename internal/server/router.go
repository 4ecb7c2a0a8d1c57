package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/eventdesk/eventdesk-backend/internal/http/handlers"
	"github.com/eventdesk/eventdesk-backend/internal/http/middleware"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthMiddleware  *middleware.AuthMiddleware
	HealthHandler   *handlers.HealthHandler
	ContractHandler *handlers.ContractHandler
	TemplateHandler *handlers.TemplateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("eventdesk"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthz", cfg.HealthHandler.Check)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	events := api.Group("/events/:eventID")
	{
		events.GET("/contract", cfg.ContractHandler.GetCurrent)
		events.POST("/contract", cfg.ContractHandler.Create)
		events.PUT("/contract/content", cfg.ContractHandler.UpdateContent)
		events.PUT("/contract/template", cfg.ContractHandler.SwitchTemplate)
		events.POST("/contract/status", cfg.ContractHandler.SetStatus)
		events.POST("/contract/pdf", cfg.ContractHandler.GeneratePDF)
		events.POST("/contract/email", cfg.ContractHandler.SendEmail)
		events.GET("/contract/variables", cfg.ContractHandler.GetVariables)
	}

	api.DELETE("/contracts/:id", cfg.ContractHandler.Delete)
	api.GET("/contract-templates", cfg.TemplateHandler.List)

	return router
}
