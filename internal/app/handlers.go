package app

import (
	"github.com/eventdesk/eventdesk-backend/internal/http/handlers"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Contract *handlers.ContractHandler
	Template *handlers.TemplateHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Contract: handlers.NewContractHandler(log, serviceset.Contracts, serviceset.Status, serviceset.Pdf, serviceset.Mail, serviceset.Variables),
		Template: handlers.NewTemplateHandler(log, serviceset.Templates),
	}
}
