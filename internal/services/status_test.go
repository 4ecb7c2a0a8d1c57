package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/apierr"
	"github.com/eventdesk/eventdesk-backend/internal/platform/ctxutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type fakeOracle struct {
	privileged bool
}

func (f *fakeOracle) IsPrivileged(rd *ctxutil.RequestData) bool { return f.privileged }

func newTestStatusService(t *testing.T, contracts *fakeContractService, repo *fakeContractRepo, privileged bool) StatusService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	render := NewRenderService(log, DefaultRenderDefaults())
	return NewStatusService(nil, log, contracts, repo, &fakeVariableService{vars: types.VariableMap{}}, render, &fakeOracle{privileged: privileged})
}

func TestSetStatusDeniedForNonPrivilegedOutsideDraft(t *testing.T) {
	contract := &types.Contract{ID: uuid.New(), Status: types.ContractStatusIssued}
	repo := &fakeContractRepo{}
	ss := newTestStatusService(t, &fakeContractService{current: contract}, repo, false)

	_, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusSent)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusForbidden {
		t.Fatalf("want permission denied, got %v", err)
	}
	if contract.Status != types.ContractStatusIssued {
		t.Fatalf("status changed on denied transition: %s", contract.Status)
	}
	if repo.saveCalls != 0 {
		t.Fatalf("contract persisted on denied transition")
	}
}

func TestSetStatusAnyActorMayLeaveDraft(t *testing.T) {
	contract := &types.Contract{ID: uuid.New(), Status: types.ContractStatusDraft}
	repo := &fakeContractRepo{}
	ss := newTestStatusService(t, &fakeContractService{current: contract}, repo, false)

	got, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusIssued)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != types.ContractStatusIssued {
		t.Fatalf("status: want=issued got=%s", got.Status)
	}
	if got.IssuedAt == nil {
		t.Fatalf("issued_at not stamped")
	}
	if repo.saveCalls != 1 {
		t.Fatalf("save calls: want=1 got=%d", repo.saveCalls)
	}
}

func TestSetStatusPrivilegedMayCancelAnywhere(t *testing.T) {
	contract := &types.Contract{ID: uuid.New(), Status: types.ContractStatusSent}
	repo := &fakeContractRepo{}
	ss := newTestStatusService(t, &fakeContractService{current: contract}, repo, true)

	got, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusCancelled)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != types.ContractStatusCancelled || got.CancelledAt == nil {
		t.Fatalf("cancel not applied: status=%s cancelled_at=%v", got.Status, got.CancelledAt)
	}
}

func TestSetStatusLazyCreatesContract(t *testing.T) {
	contracts := &fakeContractService{}
	repo := &fakeContractRepo{}
	ss := newTestStatusService(t, contracts, repo, false)

	got, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusIssued)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if contracts.created != 1 {
		t.Fatalf("lazy creation count: want=1 got=%d", contracts.created)
	}
	if got.Status != types.ContractStatusIssued {
		t.Fatalf("status on lazily created contract: %s", got.Status)
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	ss := newTestStatusService(t, &fakeContractService{}, &fakeContractRepo{}, true)

	_, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatus("archived"))
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusUnprocessableEntity {
		t.Fatalf("want validation error for unknown status, got %v", err)
	}
}

func TestSetStatusRequiresActor(t *testing.T) {
	ss := newTestStatusService(t, &fakeContractService{}, &fakeContractRepo{}, true)

	_, err := ss.SetStatus(context.Background(), uuid.New(), types.ContractStatusIssued)
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusForbidden {
		t.Fatalf("want permission denied without actor, got %v", err)
	}
}

func TestSetStatusReentryOverwritesTimestamp(t *testing.T) {
	contract := &types.Contract{ID: uuid.New(), Status: types.ContractStatusDraft}
	repo := &fakeContractRepo{}
	ss := newTestStatusService(t, &fakeContractService{current: contract}, repo, true)

	first, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusIssued)
	if err != nil {
		t.Fatalf("SetStatus first: %v", err)
	}
	firstStamp := *first.IssuedAt

	second, err := ss.SetStatus(actorContext(), uuid.New(), types.ContractStatusIssued)
	if err != nil {
		t.Fatalf("SetStatus second: %v", err)
	}
	if second.IssuedAt.Before(firstStamp) {
		t.Fatalf("re-entry stamp went backwards: first=%v second=%v", firstStamp, *second.IssuedAt)
	}
}
