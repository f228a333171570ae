package models

import (
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app message for administrators. A nil AdminID
// makes it visible to every admin.
type Notification struct {
	ID                uuid.UUID                  `gorm:"primarykey;type:uuid" json:"id"`
	Title             string                     `json:"title"`
	Message           string                     `json:"message"`
	Type              types.NotificationType     `json:"type"`
	Priority          types.NotificationPriority `json:"priority"`
	IsRead            bool                       `gorm:"not null" json:"is_read"`
	AdminID           *uuid.UUID                 `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	RelatedEntityType string                     `json:"related_entity_type,omitempty"`
	RelatedEntityID   string                     `json:"related_entity_id,omitempty"`
	Metadata          types.JSONB                `gorm:"type:jsonb" json:"metadata,omitempty"`

	types.Timestamps
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	newID(&n.ID)
	if n.Priority == "" {
		n.Priority = types.PRIORITY_NORMAL
	}
	return nil
}
