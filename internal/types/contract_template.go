package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContractTemplate is authored outside this system and read-only here.
// Legacy templates keep the whole document in LegacyContent; newer ones
// carry a paginated layout in PageSettings. When PageSettings.pages is
// present it supersedes LegacyContent.
type ContractTemplate struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;column:category_id;index" json:"category_id,omitempty"`
	LegacyContent *string        `gorm:"column:legacy_content" json:"legacy_content,omitempty"`
	PageSettings  datatypes.JSON `gorm:"column:page_settings;type:jsonb" json:"page_settings,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContractTemplate) TableName() string { return "contract_template" }

func (t *ContractTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PageSettings is the paginated layout shape stored in JSONB. Numeric
// fields are pointers so a missing value can be told apart from zero and
// filled with a layout default at render time.
type PageSettings struct {
	Pages           []string `json:"pages,omitempty"`
	LogoScale       *float64 `json:"logoScale,omitempty"`
	LogoPositionX   *float64 `json:"logoPositionX,omitempty"`
	LogoPositionY   *float64 `json:"logoPositionY,omitempty"`
	LineHeight      *float64 `json:"lineHeight,omitempty"`
	SelectedLogo    string   `json:"selectedLogo,omitempty"`
	SelectedFooter  string   `json:"selectedFooter,omitempty"`
	FooterContent   string   `json:"footerContent,omitempty"`
	FooterLogoScale *float64 `json:"footerLogoScale,omitempty"`
}

// DecodePageSettings returns nil when the column is empty or carries no
// pages, so callers fall back to LegacyContent.
func (t *ContractTemplate) DecodePageSettings() (*PageSettings, error) {
	if t == nil || len(t.PageSettings) == 0 {
		return nil, nil
	}
	var ps PageSettings
	if err := json.Unmarshal(t.PageSettings, &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}
