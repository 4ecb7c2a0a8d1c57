package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contract, error)
	// GetLatestByEventID resolves the current contract: the row with the
	// maximum creation time, or nil when none exist.
	GetLatestByEventID(dbc dbctx.Context, eventID uuid.UUID) (*types.Contract, error)
	Save(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (r *contractRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *contractRepo) Create(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error) {
	if contract == nil {
		return nil, errors.New("contract required")
	}
	if err := r.conn(dbc).Create(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Contract, error) {
	var result types.Contract
	err := r.conn(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contractRepo) GetLatestByEventID(dbc dbctx.Context, eventID uuid.UUID) (*types.Contract, error) {
	var result types.Contract
	err := r.conn(dbc).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contractRepo) Save(dbc dbctx.Context, contract *types.Contract) (*types.Contract, error) {
	if contract == nil || contract.ID == uuid.Nil {
		return nil, errors.New("persisted contract required")
	}
	if err := r.conn(dbc).Save(contract).Error; err != nil {
		return nil, err
	}
	return contract, nil
}

func (r *contractRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return r.conn(dbc).Where("id = ?", id).Delete(&types.Contract{}).Error
}
