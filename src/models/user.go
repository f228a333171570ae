package models

import (
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID    uuid.UUID  `gorm:"primarykey;type:uuid" json:"id"`
	Name  string     `json:"name,omitempty"`
	Email string     `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Role  types.Role `gorm:"not null" json:"role,omitempty"`

	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`

	types.Timestamps
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	if u.Role == "" {
		u.Role = types.ROLE_USER
	}
	return nil
}
