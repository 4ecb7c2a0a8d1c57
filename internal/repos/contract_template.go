package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type ContractTemplateRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContractTemplate, error)
	List(dbc dbctx.Context) ([]*types.ContractTemplate, error)
	// GetDefaultForCategory prefers a template linked to the event's
	// category, falling back to the newest template overall.
	GetDefaultForCategory(dbc dbctx.Context, categoryID *uuid.UUID) (*types.ContractTemplate, error)
}

type contractTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ContractTemplateRepo {
	repoLog := baseLog.With("repo", "ContractTemplateRepo")
	return &contractTemplateRepo{db: db, log: repoLog}
}

func (r *contractTemplateRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *contractTemplateRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContractTemplate, error) {
	var result types.ContractTemplate
	err := r.conn(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contractTemplateRepo) List(dbc dbctx.Context) ([]*types.ContractTemplate, error) {
	var results []*types.ContractTemplate
	if err := r.conn(dbc).Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contractTemplateRepo) GetDefaultForCategory(dbc dbctx.Context, categoryID *uuid.UUID) (*types.ContractTemplate, error) {
	if categoryID != nil {
		var result types.ContractTemplate
		err := r.conn(dbc).
			Where("category_id = ?", *categoryID).
			Order("created_at DESC").
			First(&result).Error
		if err == nil {
			return &result, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var result types.ContractTemplate
	err := r.conn(dbc).Order("created_at DESC").First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
