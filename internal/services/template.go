package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// TemplateService exposes the read-only template catalogue. Templates
// are authored elsewhere; this side never writes them.
type TemplateService interface {
	List(ctx context.Context) ([]*types.ContractTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.ContractTemplate, error)
}

type templateService struct {
	log          *logger.Logger
	templateRepo repos.ContractTemplateRepo
}

func NewTemplateService(log *logger.Logger, templateRepo repos.ContractTemplateRepo) TemplateService {
	return &templateService{
		log:          log.With("service", "TemplateService"),
		templateRepo: templateRepo,
	}
}

func (ts *templateService) List(ctx context.Context) ([]*types.ContractTemplate, error) {
	templates, err := ts.templateRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("list templates: %w", err))
	}
	return templates, nil
}

func (ts *templateService) GetByID(ctx context.Context, id uuid.UUID) (*types.ContractTemplate, error) {
	template, err := ts.templateRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("fetch template %s: %w", id, err))
	}
	if template == nil {
		return nil, apierr.NotFound(fmt.Errorf("template %s not found", id))
	}
	return template, nil
}
