// Package wishlist keeps the tours a user has saved for later.
package wishlist

import (
	"context"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTourNotFound = types.NewNotFoundError("tour not found")
	ErrNotInList    = types.NewNotFoundError("tour is not in wishlist")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := s.db.WithContext(ctx).
		Preload("Tour").
		Scopes(scopes.OwnedBy(userID), scopes.Newest).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add saves tourID to the user's wishlist. added is false when the tour
// was already there, in which case the existing entry is returned.
func (s *Service) Add(ctx context.Context, userID, tourID uuid.UUID) (item *models.WishlistItem, added bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tours int64
		if err := tx.Model(&models.Tour{}).Scopes(scopes.WithID(tourID)).Count(&tours).Error; err != nil {
			return err
		}
		if tours == 0 {
			return ErrTourNotFound
		}
		item = &models.WishlistItem{UserID: userID, TourID: tourID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(item)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			added = true
			return nil
		}
		item = &models.WishlistItem{}
		return tx.Scopes(scopes.OwnedBy(userID)).Where("tour_id = ?", tourID).First(item).Error
	})
	if err != nil {
		return nil, false, err
	}
	return item, added, nil
}

func (s *Service) Remove(ctx context.Context, userID, tourID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Scopes(scopes.OwnedBy(userID)).
		Where("tour_id = ?", tourID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInList
	}
	return nil
}
