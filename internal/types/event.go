package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string        `gorm:"column:name;not null" json:"name"`
	Kind           string        `gorm:"column:kind" json:"kind"`
	StartsAt       time.Time     `gorm:"column:starts_at;not null" json:"starts_at"`
	EndsAt         time.Time     `gorm:"column:ends_at;not null" json:"ends_at"`
	GuestCount     int           `gorm:"column:guest_count" json:"guest_count"`
	Budget         float64       `gorm:"column:budget" json:"budget"`
	ContactID      *uuid.UUID    `gorm:"type:uuid;column:contact_id;index" json:"contact_id,omitempty"`
	Contact        *Contact      `gorm:"foreignKey:ContactID;references:ID" json:"contact,omitempty"`
	OrganizationID *uuid.UUID    `gorm:"type:uuid;column:organization_id;index" json:"organization_id,omitempty"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID;references:ID" json:"organization,omitempty"`
	LocationID     *uuid.UUID    `gorm:"type:uuid;column:location_id;index" json:"location_id,omitempty"`
	Location       *Location     `gorm:"foreignKey:LocationID;references:ID" json:"location,omitempty"`
	LocationText   string        `gorm:"column:location_text" json:"location_text"`
	CategoryID     *uuid.UUID    `gorm:"type:uuid;column:category_id;index" json:"category_id,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string { return "event" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
