package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/repos"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

// StatusService applies lifecycle transitions. The permission rule is a
// single coarse check, not a transition graph: a privileged actor may
// move anywhere, anyone else only out of draft or cancelled. Denied
// requests change nothing.
type StatusService interface {
	SetStatus(ctx context.Context, eventID uuid.UUID, newStatus types.ContractStatus) (*types.Contract, error)
}

type statusService struct {
	db           *gorm.DB
	log          *logger.Logger
	contracts    ContractService
	contractRepo repos.ContractRepo
	variables    VariableService
	renderer     RenderService
	oracle       PermissionOracle
}

func NewStatusService(db *gorm.DB, log *logger.Logger, contracts ContractService, contractRepo repos.ContractRepo, variables VariableService, renderer RenderService, oracle PermissionOracle) StatusService {
	return &statusService{
		db:           db,
		log:          log.With("service", "StatusService"),
		contracts:    contracts,
		contractRepo: contractRepo,
		variables:    variables,
		renderer:     renderer,
		oracle:       oracle,
	}
}

func (ss *statusService) SetStatus(ctx context.Context, eventID uuid.UUID, newStatus types.ContractStatus) (*types.Contract, error) {
	if _, err := types.ParseContractStatus(string(newStatus)); err != nil {
		return nil, apierr.Validation(err)
	}

	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.PermissionDenied(fmt.Errorf("no actor on request"))
	}

	contract, err := ss.contracts.GetOrCreate(ctx, eventID)
	if err != nil {
		return nil, err
	}

	allowed := ss.oracle.IsPrivileged(rd) ||
		contract.Status == types.ContractStatusDraft ||
		contract.Status == types.ContractStatusCancelled
	if !allowed {
		return nil, apierr.PermissionDenied(fmt.Errorf("actor %s may not change contract status from %q", rd.ActorID, contract.Status))
	}

	// Snapshot the rendered document as it stands at the transition.
	if len(contract.Content) > 0 {
		doc, decErr := types.DecodeDocument(contract.Content)
		if decErr != nil {
			return nil, apierr.Validation(decErr)
		}
		vars, resErr := ss.variables.Resolve(ctx, eventID)
		if resErr != nil {
			return nil, resErr
		}
		content, encErr := ss.renderer.Render(doc, vars).Encode()
		if encErr != nil {
			return nil, apierr.Validation(encErr)
		}
		contract.Content = content
	}

	now := time.Now()
	contract.Status = newStatus
	contract.StampStatus(newStatus, now)

	if err := ss.save(ctx, contract); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("persist status change: %w", err))
	}

	ss.log.Info("Contract status changed",
		"contract_id", contract.ID,
		"event_id", eventID,
		"status", string(newStatus),
		"actor_id", rd.ActorID,
	)
	return contract, nil
}

func (ss *statusService) save(ctx context.Context, contract *types.Contract) error {
	if ss.db == nil {
		_, err := ss.contractRepo.Save(dbctx.Context{Ctx: ctx}, contract)
		return err
	}
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ss.contractRepo.Save(dbctx.Context{Ctx: ctx, Tx: tx}, contract)
		return err
	})
}
