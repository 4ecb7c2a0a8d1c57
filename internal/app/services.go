package app

import (
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/services"
)

type Services struct {
	Variables services.VariableService
	Render    services.RenderService
	Tracker   services.GenerationTracker
	Contracts services.ContractService
	Status    services.StatusService
	Pdf       services.PdfService
	Mail      services.MailService
	Templates services.TemplateService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clients Clients) Services {
	tables := services.NewOfferTableBuilder(log)
	variables := services.NewVariableService(log, reposet.Event, reposet.Offer, reposet.Employee, tables)
	render := services.NewRenderService(log, services.LoadRenderDefaults(log))
	tracker := services.NewGenerationTracker(log)
	oracle := services.NewPermissionOracle(log)

	contracts := services.NewContractService(db, log, reposet.Contract, reposet.Template, reposet.Event, variables, render, tracker)
	status := services.NewStatusService(db, log, contracts, reposet.Contract, variables, render, oracle)
	pdf := services.NewPdfService(db, log, contracts, reposet.Contract, tracker, clients.Renderer)
	mail := services.NewMailService(log, contracts, status, reposet.Employee, clients.Bucket, clients.Mail)
	templates := services.NewTemplateService(log, reposet.Template)

	return Services{
		Variables: variables,
		Render:    render,
		Tracker:   tracker,
		Contracts: contracts,
		Status:    status,
		Pdf:       pdf,
		Mail:      mail,
		Templates: templates,
	}
}
