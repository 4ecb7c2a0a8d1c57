package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type fakeEventRepo struct {
	event *types.Event
	err   error
}

func (f *fakeEventRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Event, error) {
	return f.event, f.err
}

type fakeOfferRepo struct {
	offer *types.Offer
	err   error
}

func (f *fakeOfferRepo) GetLatestByEventID(dbc dbctx.Context, eventID uuid.UUID) (*types.Offer, error) {
	return f.offer, f.err
}

type fakeEmployeeRepo struct {
	employee  *types.Employee
	signature *types.EmailSignature
	err       error
}

func (f *fakeEmployeeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error) {
	return f.employee, f.err
}

func (f *fakeEmployeeRepo) GetSignatureByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.EmailSignature, error) {
	return f.signature, f.err
}

type fakeContractRepo struct {
	contracts map[uuid.UUID]*types.Contract
	latest    *types.Contract
	saveCalls int
	getErr    error
	saveErr   error
}

func (f *fakeContractRepo) Create(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error) {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	if contract.Status == "" {
		contract.Status = types.ContractStatusDraft
	}
	contract.CreatedAt = time.Now()
	if f.contracts == nil {
		f.contracts = map[uuid.UUID]*types.Contract{}
	}
	f.contracts[contract.ID] = contract
	f.latest = contract
	return contract, nil
}

func (f *fakeContractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contract, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.contracts[id], nil
}

func (f *fakeContractRepo) GetLatestByEventID(dbc dbctx.Context, eventID uuid.UUID) (*types.Contract, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.latest, nil
}

func (f *fakeContractRepo) Save(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.contracts == nil {
		f.contracts = map[uuid.UUID]*types.Contract{}
	}
	f.contracts[contract.ID] = contract
	f.latest = contract
	return contract, nil
}

func (f *fakeContractRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	delete(f.contracts, id)
	if f.latest != nil && f.latest.ID == id {
		f.latest = nil
	}
	return nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]*types.ContractTemplate
	fallback  *types.ContractTemplate
	err       error
}

func (f *fakeTemplateRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContractTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.templates[id], nil
}

func (f *fakeTemplateRepo) List(dbc dbctx.Context) ([]*types.ContractTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.ContractTemplate, 0, len(f.templates))
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateRepo) GetDefaultForCategory(dbc dbctx.Context, categoryID *uuid.UUID) (*types.ContractTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.fallback, nil
}

type fakeVariableService struct {
	vars types.VariableMap
	err  error
}

func (f *fakeVariableService) Resolve(ctx context.Context, eventID uuid.UUID) (types.VariableMap, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vars, nil
}

type fakeContractService struct {
	current     *types.Contract
	getErr      error
	orCreateErr error
	created     int
}

func (f *fakeContractService) GetCurrent(ctx context.Context, eventID uuid.UUID) (*types.Contract, error) {
	return f.current, f.getErr
}

func (f *fakeContractService) GetOrCreate(ctx context.Context, eventID uuid.UUID) (*types.Contract, error) {
	if f.orCreateErr != nil {
		return nil, f.orCreateErr
	}
	if f.current != nil {
		return f.current, nil
	}
	f.created++
	f.current = &types.Contract{ID: uuid.New(), EventID: eventID, Status: types.ContractStatusDraft}
	return f.current, nil
}

func (f *fakeContractService) CreateDraft(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error) {
	return f.GetOrCreate(ctx, eventID)
}

func (f *fakeContractService) UpdateContent(ctx context.Context, eventID uuid.UUID, doc types.Document) (*types.Contract, error) {
	return f.current, nil
}

func (f *fakeContractService) SwitchTemplate(ctx context.Context, eventID, templateID uuid.UUID) (*types.Contract, error) {
	return f.current, nil
}

func (f *fakeContractService) Delete(ctx context.Context, contractID uuid.UUID) error {
	return nil
}
