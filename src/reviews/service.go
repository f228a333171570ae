// Package reviews stores traveler ratings of tours and their moderation.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"tourbook/src/common"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Service struct {
	db      *gorm.DB
	auditor common.Auditor
}

func NewService(db *gorm.DB, auditor common.Auditor) *Service {
	return &Service{db: db, auditor: auditor}
}

// Create records actor's review of a tour. The optional booking must be
// the actor's own booking of that tour.
func (s *Service) Create(ctx context.Context, actor types.Actor, body types.CreateReviewRequestBody) (*models.Review, error) {
	if body.Rating < MinRating || body.Rating > MaxRating {
		return nil, ErrRatingRange
	}
	comment := strings.TrimSpace(body.Comment)
	if comment == "" {
		return nil, ErrCommentRequired
	}

	review := &models.Review{
		UserID:    actor.UserID,
		TourID:    body.TourID,
		BookingID: body.BookingID,
		Rating:    body.Rating,
		Title:     strings.TrimSpace(body.Title),
		Comment:   comment,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tours int64
		if err := tx.Model(&models.Tour{}).Scopes(scopes.WithID(body.TourID)).Count(&tours).Error; err != nil {
			return err
		}
		if tours == 0 {
			return ErrTourNotFound
		}
		if body.BookingID != nil {
			var owned int64
			if err := tx.Model(&models.Booking{}).
				Scopes(scopes.WithID(*body.BookingID), scopes.OwnedBy(actor.UserID)).
				Where("tour_id = ?", body.TourID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned == 0 {
				return ErrBookingNotOwned
			}
		}
		var existing int64
		if err := tx.Model(&models.Review{}).
			Scopes(scopes.OwnedBy(actor.UserID)).
			Where("tour_id = ?", body.TourID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyReviewed
		}
		return tx.Create(review).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// List returns reviews newest first, narrowed by tour and author when set.
func (s *Service) List(ctx context.Context, filters types.ReviewQueryFilters) ([]models.Review, error) {
	q := s.db.WithContext(ctx).Model(&models.Review{})
	if filters.TourID != "" {
		q = q.Where("tour_id = ?", filters.TourID)
	}
	if filters.UserID != "" {
		q = q.Scopes(scopes.OwnedBy(uuid.MustParse(filters.UserID)))
	}
	var reviews []models.Review
	if err := q.Preload("User").Scopes(scopes.Newest).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Delete removes a review. Authors delete their own; admins delete any,
// and removing someone else's review is audited.
func (s *Service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	own := review.UserID == actor.UserID
	if !own && !actor.IsAdmin() {
		return ErrNotAuthor
	}
	if err := s.db.WithContext(ctx).Delete(review).Error; err != nil {
		return err
	}
	if !own {
		common.Audit(ctx, s.auditor, actor.UserID, "Deleted review", "Review", review.ID.String())
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, actor types.Actor, id uuid.UUID, status string) (*models.Review, error) {
	next := types.ReviewStatus(strings.ToLower(status))
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}
	review, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status == next {
		return review, nil
	}
	if err := s.db.WithContext(ctx).Model(review).Update("status", next).Error; err != nil {
		return nil, err
	}
	review.Status = next
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Updated review status to %s", next), "Review", review.ID.String())
	return review, nil
}
