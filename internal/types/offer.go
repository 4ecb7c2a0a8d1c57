package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Offer struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID    `gorm:"type:uuid;column:event_id;not null;index" json:"event_id"`
	Total     float64      `gorm:"column:total" json:"total"`
	Items     []*OfferItem `gorm:"foreignKey:OfferID;references:ID" json:"items,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:now()" json:"updated_at"`
}

func (Offer) TableName() string { return "offer" }

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OfferItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OfferID   uuid.UUID `gorm:"type:uuid;column:offer_id;not null;index" json:"offer_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	UnitPrice float64   `gorm:"column:unit_price" json:"unit_price"`
	Position  int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (OfferItem) TableName() string { return "offer_item" }

func (oi *OfferItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
