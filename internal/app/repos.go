package app

import (
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
)

type Repos struct {
	Contract repos.ContractRepo
	Template repos.ContractTemplateRepo
	Event    repos.EventRepo
	Offer    repos.OfferRepo
	Employee repos.EmployeeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Contract: repos.NewContractRepo(db, log),
		Template: repos.NewContractTemplateRepo(db, log),
		Event:    repos.NewEventRepo(db, log),
		Offer:    repos.NewOfferRepo(db, log),
		Employee: repos.NewEmployeeRepo(db, log),
	}
}
