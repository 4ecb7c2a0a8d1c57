package app

import (
	"github.com/gin-gonic/gin"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  mw.Auth,
		HealthHandler:   handlerset.Health,
		ContractHandler: handlerset.Contract,
		TemplateHandler: handlerset.Template,
	})
}
