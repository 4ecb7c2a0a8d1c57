package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// ContractService manages the contract row itself: current-contract
// resolution, lazy creation, content updates and the pre-generation
// template switch. Every caller that may need a contract to exist goes
// through GetOrCreate so the single-current-contract rule lives in one
// place.
type ContractService interface {
	GetCurrent(ctx context.Context, eventID uuid.UUID) (*types.Contract, error)
	GetOrCreate(ctx context.Context, eventID uuid.UUID) (*types.Contract, error)
	CreateDraft(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error)
	UpdateContent(ctx context.Context, eventID uuid.UUID, doc types.Document) (*types.Contract, error)
	SwitchTemplate(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error)
	Delete(ctx context.Context, contractID uuid.UUID) error
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	contractRepo repos.ContractRepo
	templateRepo repos.ContractTemplateRepo
	eventRepo    repos.EventRepo
	variables    VariableService
	renderer     RenderService
	tracker      GenerationTracker
}

func NewContractService(db *gorm.DB, log *logger.Logger, contractRepo repos.ContractRepo, templateRepo repos.ContractTemplateRepo, eventRepo repos.EventRepo, variables VariableService, renderer RenderService, tracker GenerationTracker) ContractService {
	return &contractService{
		db:           db,
		log:          log.With("service", "ContractService"),
		contractRepo: contractRepo,
		templateRepo: templateRepo,
		eventRepo:    eventRepo,
		variables:    variables,
		renderer:     renderer,
		tracker:      tracker,
	}
}

func (cs *contractService) inTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if cs.db == nil {
		return fn(dbctx.Context{Ctx: ctx})
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

// GetCurrent resolves the current contract as the most-recently-created
// row. Concurrent creations can leave orphaned older rows; reads stay
// consistent because the newest row always wins.
func (cs *contractService) GetCurrent(ctx context.Context, eventID uuid.UUID) (*types.Contract, error) {
	contract, err := cs.contractRepo.GetLatestByEventID(dbctx.Context{Ctx: ctx}, eventID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("fetch current contract for event %s: %w", eventID, err))
	}
	return contract, nil
}

func (cs *contractService) GetOrCreate(ctx context.Context, eventID uuid.UUID) (*types.Contract, error) {
	contract, err := cs.GetCurrent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if contract != nil {
		return contract, nil
	}
	return cs.CreateDraft(ctx, eventID, uuid.Nil)
}

// CreateDraft builds a fresh draft: recipient derived from the event's
// contact (preferred) or organization, template taken from the request
// or resolved through the event's category, content rendered from
// freshly resolved variables.
func (cs *contractService) CreateDraft(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error) {
	rd := ctxutil.GetRequestData(ctx)
	dbc := dbctx.Context{Ctx: ctx}

	event, err := cs.eventRepo.GetByID(dbc, eventID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("fetch event %s: %w", eventID, err))
	}
	if event == nil {
		return nil, apierr.NotFound(fmt.Errorf("event %s not found", eventID))
	}

	recipient := deriveRecipient(event)
	if recipient == "" {
		return nil, apierr.Validation(fmt.Errorf("event %s has no contact or organization email for the contract recipient", eventID))
	}

	template, err := cs.resolveTemplate(dbc, event, templateID)
	if err != nil {
		return nil, err
	}

	doc, err := types.DocumentFromTemplate(template)
	if err != nil {
		return nil, apierr.Validation(err)
	}
	vars, err := cs.variables.Resolve(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rendered := cs.renderer.Render(doc, vars)
	content, err := rendered.Encode()
	if err != nil {
		return nil, apierr.Validation(err)
	}

	contract := &types.Contract{
		EventID:    eventID,
		TemplateID: template.ID,
		Status:     types.ContractStatusDraft,
		Content:    content,
		Recipient:  recipient,
	}
	if rd != nil {
		contract.CreatedBy = rd.ActorID
	}

	if err := cs.inTx(ctx, func(dbc dbctx.Context) error {
		_, err := cs.contractRepo.Create(dbc, contract)
		return err
	}); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("create contract draft: %w", err))
	}

	cs.log.Info("Contract draft created", "contract_id", contract.ID, "event_id", eventID, "template_id", template.ID)
	return contract, nil
}

func deriveRecipient(event *types.Event) string {
	if event.Contact != nil && strings.TrimSpace(event.Contact.Email) != "" {
		return strings.TrimSpace(event.Contact.Email)
	}
	if event.Organization != nil && strings.TrimSpace(event.Organization.Email) != "" {
		return strings.TrimSpace(event.Organization.Email)
	}
	return ""
}

func (cs *contractService) resolveTemplate(dbc dbctx.Context, event *types.Event, templateID uuid.UUID) (*types.ContractTemplate, error) {
	if templateID != uuid.Nil {
		template, err := cs.templateRepo.GetByID(dbc, templateID)
		if err != nil {
			return nil, apierr.Upstream(fmt.Errorf("fetch template %s: %w", templateID, err))
		}
		if template == nil {
			return nil, apierr.NotFound(fmt.Errorf("template %s not found", templateID))
		}
		return template, nil
	}
	template, err := cs.templateRepo.GetDefaultForCategory(dbc, event.CategoryID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("resolve default template: %w", err))
	}
	if template == nil {
		return nil, apierr.Validation(fmt.Errorf("no contract template available for event %s", event.ID))
	}
	return template, nil
}

// UpdateContent persists an edited document. The staleness flag moves
// in the same transaction as the content write.
func (cs *contractService) UpdateContent(ctx context.Context, eventID uuid.UUID, doc types.Document) (*types.Contract, error) {
	contract, err := cs.GetOrCreate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	content, err := doc.Encode()
	if err != nil {
		return nil, apierr.Validation(err)
	}

	contract.Content = content
	cs.tracker.MarkModified(contract)

	if err := cs.inTx(ctx, func(dbc dbctx.Context) error {
		_, err := cs.contractRepo.Save(dbc, contract)
		return err
	}); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("save contract content: %w", err))
	}
	return contract, nil
}

// SwitchTemplate replaces the template and re-renders content, but only
// while no artifact has been generated. After generation the request is
// rejected outright rather than silently ignored.
func (cs *contractService) SwitchTemplate(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error) {
	contract, err := cs.GetOrCreate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if contract.GeneratedPDFPath != nil {
		return nil, apierr.Validation(fmt.Errorf("contract %s already has a generated artifact; template can no longer be switched", contract.ID))
	}

	dbc := dbctx.Context{Ctx: ctx}
	template, err := cs.templateRepo.GetByID(dbc, templateID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("fetch template %s: %w", templateID, err))
	}
	if template == nil {
		return nil, apierr.NotFound(fmt.Errorf("template %s not found", templateID))
	}

	doc, err := types.DocumentFromTemplate(template)
	if err != nil {
		return nil, apierr.Validation(err)
	}
	vars, err := cs.variables.Resolve(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rendered := cs.renderer.Render(doc, vars)
	content, err := rendered.Encode()
	if err != nil {
		return nil, apierr.Validation(err)
	}

	contract.TemplateID = template.ID
	contract.Content = content

	if err := cs.inTx(ctx, func(dbc dbctx.Context) error {
		_, err := cs.contractRepo.Save(dbc, contract)
		return err
	}); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("save contract after template switch: %w", err))
	}

	cs.log.Info("Contract template switched", "contract_id", contract.ID, "template_id", template.ID)
	return contract, nil
}

func (cs *contractService) Delete(ctx context.Context, contractID uuid.UUID) error {
	contract, err := cs.contractRepo.GetByID(dbctx.Context{Ctx: ctx}, contractID)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("fetch contract %s: %w", contractID, err))
	}
	if contract == nil {
		return apierr.NotFound(fmt.Errorf("contract %s not found", contractID))
	}
	if err := cs.inTx(ctx, func(dbc dbctx.Context) error {
		return cs.contractRepo.Delete(dbc, contractID)
	}); err != nil {
		return apierr.Upstream(fmt.Errorf("delete contract %s: %w", contractID, err))
	}
	cs.log.Info("Contract deleted", "contract_id", contractID)
	return nil
}
