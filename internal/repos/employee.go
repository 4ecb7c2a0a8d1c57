package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventdesk/eventdesk-backend/internal/platform/dbctx"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
	"github.com/eventdesk/eventdesk-backend/internal/types"
)

type EmployeeRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error)
	GetSignatureByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.EmailSignature, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *employeeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Employee, error) {
	var result types.Employee
	err := r.conn(dbc).Where("id = ?", id).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *employeeRepo) GetSignatureByEmployeeID(dbc dbctx.Context, employeeID uuid.UUID) (*types.EmailSignature, error) {
	var result types.EmailSignature
	err := r.conn(dbc).
		Where("employee_id = ?", employeeID).
		Order("updated_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
