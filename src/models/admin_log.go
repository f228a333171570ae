package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminLog is the append-only audit trail of privileged changes.
type AdminLog struct {
	ID             uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`
	AdminID        uuid.UUID `gorm:"type:uuid;index;not null" json:"admin_id"`
	Action         string    `gorm:"not null" json:"action"`
	AffectedEntity string    `json:"affected_entity"`
	EntityID       string    `gorm:"index" json:"entity_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *AdminLog) BeforeCreate(tx *gorm.DB) error {
	newID(&l.ID)
	return nil
}
