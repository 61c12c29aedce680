package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledger-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Company owns every document, contact and catalog entry
type Company struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	Currency  string         `gorm:"size:10;not null;default:'EUR'" json:"currency"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sequences []NumberSequence `gorm:"foreignKey:CompanyID" json:"sequences,omitempty"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// NumberSequence is the per company, per document type counter used to number documents
type NumberSequence struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_company_type" json:"company_id"`
	DocumentType enum.DocumentType `gorm:"size:20;not null;uniqueIndex:idx_sequence_company_type" json:"document_type"`
	Prefix       string            `gorm:"size:20;not null;default:''" json:"prefix"`
	NextNumber   int64             `gorm:"not null;default:1;check:next_number >= 1" json:"next_number"`
	Padding      int               `gorm:"not null;default:4" json:"padding"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sequence
func (s *NumberSequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the NumberSequence model
func (NumberSequence) TableName() string {
	return "number_sequences"
}

// Format renders n with the sequence's prefix and zero padding
func (s NumberSequence) Format(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.Padding, n)
}
