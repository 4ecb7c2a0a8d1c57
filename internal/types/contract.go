package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractStatusDraft          ContractStatus = "draft"
	ContractStatusIssued         ContractStatus = "issued"
	ContractStatusSent           ContractStatus = "sent"
	ContractStatusSignedByClient ContractStatus = "signed_by_client"
	ContractStatusSignedReturned ContractStatus = "signed_returned"
	ContractStatusCancelled      ContractStatus = "cancelled"
)

func ParseContractStatus(raw string) (ContractStatus, error) {
	s := ContractStatus(raw)
	switch s {
	case ContractStatusDraft, ContractStatusIssued, ContractStatusSent,
		ContractStatusSignedByClient, ContractStatusSignedReturned, ContractStatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown contract status %q", raw)
}

// Contract is one managed document instance for an event. The "current"
// contract per event is the most-recently-created row; older rows stay
// as history and are never deleted automatically.
type Contract struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EventID                 uuid.UUID      `gorm:"type:uuid;column:event_id;not null;index" json:"event_id"`
	TemplateID              uuid.UUID      `gorm:"type:uuid;column:template_id;not null" json:"template_id"`
	Status                  ContractStatus `gorm:"column:status;not null;default:'draft'" json:"status"`
	Content                 datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`
	Recipient               string         `gorm:"column:recipient" json:"recipient"`
	CreatedBy               uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	GeneratedPDFPath        *string        `gorm:"column:generated_pdf_path" json:"generated_pdf_path,omitempty"`
	ModifiedAfterGeneration bool           `gorm:"column:modified_after_generation;not null;default:false" json:"modified_after_generation"`
	IssuedAt                *time.Time     `gorm:"column:issued_at" json:"issued_at,omitempty"`
	SentAt                  *time.Time     `gorm:"column:sent_at" json:"sent_at,omitempty"`
	SignedByClientAt        *time.Time     `gorm:"column:signed_by_client_at" json:"signed_by_client_at,omitempty"`
	SignedReturnedAt        *time.Time     `gorm:"column:signed_returned_at" json:"signed_returned_at,omitempty"`
	CancelledAt             *time.Time     `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt               time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Contract) TableName() string { return "contract" }

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ContractStatusDraft
	}
	return nil
}

// StampStatus records entry into a state. Re-entering the same state
// overwrites the timestamp: the field means "most recent entry".
func (c *Contract) StampStatus(status ContractStatus, now time.Time) {
	switch status {
	case ContractStatusIssued:
		c.IssuedAt = &now
	case ContractStatusSent:
		c.SentAt = &now
	case ContractStatusSignedByClient:
		c.SignedByClientAt = &now
	case ContractStatusSignedReturned:
		c.SignedReturnedAt = &now
	case ContractStatusCancelled:
		c.CancelledAt = &now
	}
}
