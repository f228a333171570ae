package models

import (
	"fmt"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Tour struct {
	ID             uuid.UUID        `gorm:"primarykey;type:uuid" json:"id"`
	Name           string           `gorm:"not null" json:"name"`
	Slug           string           `gorm:"uniqueIndex" json:"slug"`
	Description    string           `json:"description,omitempty"`
	Location       string           `json:"location,omitempty"`
	Duration       int              `json:"duration"`
	PricePerPerson decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price_per_person"`
	MaxGroupSize   int              `json:"max_group_size"`
	Status         types.TourStatus `gorm:"not null" json:"status"`
	StartDates     []string         `gorm:"serializer:json" json:"start_dates,omitempty"`
	Included       []string         `gorm:"serializer:json" json:"included,omitempty"`
	NotIncluded    []string         `gorm:"serializer:json" json:"not_included,omitempty"`
	Featured       bool             `json:"featured"`
	CreatedBy      *uuid.UUID       `gorm:"type:uuid" json:"created_by,omitempty"`

	types.Timestamps
}

func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	newID(&t.ID)
	if t.Status == "" {
		t.Status = types.TOUR_ACTIVE
	}
	if t.Slug == "" {
		t.Slug = TourSlug(t.Name, t.ID)
	}
	return nil
}

// TourSlug builds a unique slug from a tour's name and id.
func TourSlug(name string, id uuid.UUID) string {
	return fmt.Sprintf("%s-%s", slug.Make(name), id.String()[:8])
}
