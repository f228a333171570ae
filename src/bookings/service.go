// Package bookings holds the booking lifecycle rules: creation, status
// transitions by administrators and cancellation by travelers.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"tourbook/src/common"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CancellationWindow is the minimum lead time before the start date for a
// traveler to cancel on their own.
const CancellationWindow = 24 * time.Hour

type Service struct {
	db       *gorm.DB
	notifier common.Notifier
	auditor  common.Auditor
	now      func() time.Time
}

func NewService(db *gorm.DB, notifier common.Notifier, auditor common.Auditor) *Service {
	return &Service{
		db:       db,
		notifier: notifier,
		auditor:  auditor,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TotalPrice is pricePerPerson times people, rounded to cents.
func TotalPrice(pricePerPerson decimal.Decimal, people int) decimal.Decimal {
	return pricePerPerson.Mul(decimal.NewFromInt(int64(people))).Round(2)
}

func (s *Service) Create(ctx context.Context, actor types.Actor, in types.CreateBookingRequestBody) (*models.Booking, error) {
	if in.NumberOfPeople < 1 {
		return nil, types.NewValidationError("number_of_people must be at least 1")
	}
	if in.StartDate.IsZero() {
		return nil, types.NewValidationError("start_date is required")
	}
	ti := in.TravelerInfo
	if strings.TrimSpace(ti.FirstName) == "" || strings.TrimSpace(ti.LastName) == "" || strings.TrimSpace(ti.Email) == "" {
		return nil, types.NewValidationError("traveler first name, last name and email are required")
	}

	var tour models.Tour
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(in.TourID)).First(&tour).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	if tour.Status != types.TOUR_ACTIVE {
		return nil, ErrTourUnavailable
	}
	if tour.MaxGroupSize > 0 && in.NumberOfPeople > tour.MaxGroupSize {
		return nil, ErrGroupTooLarge.Withf("number of people exceeds the maximum group size of %d", tour.MaxGroupSize)
	}

	startDate := in.StartDate.UTC()
	booking := models.Booking{
		UserID:         actor.UserID,
		TourID:         tour.ID,
		NumberOfPeople: in.NumberOfPeople,
		TotalPrice:     TotalPrice(tour.PricePerPerson, in.NumberOfPeople),
		BookingDate:    s.now().UTC(),
		StartDate:      &startDate,
		Status:         types.BOOKING_PENDING,
		PaymentStatus:  types.PAYMENT_PENDING,
		TravelerInfo:   ti,
	}
	if err := s.db.WithContext(ctx).Create(&booking).Error; err != nil {
		log.Printf("[Booking] Error creating booking: %s\n", err.Error())
		return nil, err
	}
	booking.Tour = &tour

	common.Notify(ctx, s.notifier, common.BookingNotification(booking.ID, actor.UserID, tour.Name, common.BookingCreated))
	return &booking, nil
}

// List returns the caller's bookings, or every booking for an admin.
func (s *Service) List(ctx context.Context, actor types.Actor) ([]models.Booking, error) {
	var bookings []models.Booking
	q := s.db.WithContext(ctx).Model(&models.Booking{}).Preload("Tour").Scopes(scopes.Newest)
	if !actor.IsAdmin() {
		q = q.Scopes(scopes.OwnedBy(actor.UserID))
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Service) Get(ctx context.Context, actor types.Actor, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return nil, ErrNotOwner
	}
	return booking, nil
}

// Update changes a booking's status and/or payment status. Both are admin
// only. Payment status follows the payment state machine and moves the
// linked payment record with it; repeating the current value is a no-op.
func (s *Service) Update(ctx context.Context, actor types.Actor, in types.UpdateBookingRequestBody) (*models.Booking, error) {
	if in.Status == nil && in.PaymentStatus == nil {
		return nil, ErrNothingToUpdate
	}
	var status types.BookingStatus
	if in.Status != nil {
		if !actor.IsAdmin() {
			return nil, ErrAdminRequired
		}
		status = types.BookingStatus(*in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}
	var paymentStatus types.PaymentStatus
	if in.PaymentStatus != nil {
		if !actor.IsAdmin() {
			return nil, ErrPaymentAdminRequired
		}
		paymentStatus = types.PaymentStatus(*in.PaymentStatus)
		if !paymentStatus.Valid() {
			return nil, ErrInvalidPaymentStatus
		}
	}

	booking, err := s.find(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return nil, ErrNotOwner
	}

	now := s.now().UTC()
	updates := map[string]any{}
	if status != "" {
		updates["status"] = status
	}
	paymentChanged := paymentStatus != "" && paymentStatus != booking.PaymentStatus
	if paymentChanged {
		if !booking.PaymentStatus.CanTransitionTo(paymentStatus) {
			return nil, ErrPaymentTransition.Withf("cannot change payment status from %s to %s", booking.PaymentStatus, paymentStatus)
		}
		updates["payment_status"] = paymentStatus
		if paymentStatus == types.PAYMENT_PAID {
			updates["payment_date"] = now
		}
	}
	if len(updates) == 0 {
		return booking, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{ID: booking.ID}).Updates(updates).Error; err != nil {
			return err
		}
		if !paymentChanged || booking.PaymentReference == nil {
			return nil
		}
		return movePayment(tx, *booking.PaymentReference, paymentStatus, now)
	})
	if err != nil {
		log.Printf("[Booking] Error updating booking %s: %s\n", booking.ID, err.Error())
		return nil, err
	}

	if status != "" {
		s.afterStatusChange(ctx, actor, booking, status)
	}
	return s.find(ctx, booking.ID)
}

// UpdateStatus is the administrative status transition.
func (s *Service) UpdateStatus(ctx context.Context, actor types.Actor, id uuid.UUID, status string) (*models.Booking, error) {
	return s.Update(ctx, actor, types.UpdateBookingRequestBody{BookingID: id, Status: &status})
}

func (s *Service) afterStatusChange(ctx context.Context, actor types.Actor, booking *models.Booking, status types.BookingStatus) {
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Updated booking status to %s", status), "Booking", booking.ID.String())

	var action common.BookingAction
	switch status {
	case types.BOOKING_CONFIRMED:
		action = common.BookingConfirmed
	case types.BOOKING_CANCELED:
		action = common.BookingCancelled
	default:
		return
	}
	common.Notify(ctx, s.notifier, common.BookingNotification(booking.ID, booking.UserID, tourName(booking), action))
}

// Cancel is the traveler's own cancellation. It is refused for bookings
// that are already cancelled, have no start date, or start in less than
// CancellationWindow.
func (s *Service) Cancel(ctx context.Context, actor types.Actor, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, ErrNotOwner
	}
	if booking.Status == types.BOOKING_CANCELED {
		return nil, ErrAlreadyCanceled
	}
	if booking.StartDate == nil {
		return nil, ErrNoStartDate
	}
	hours := booking.StartDate.Sub(s.now()).Hours()
	if hours < CancellationWindow.Hours() {
		return nil, ErrCancellationWindow
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Booking{ID: booking.ID}).
		Update("status", types.BOOKING_CANCELED).
		Error; err != nil {
		log.Printf("[Booking] Error cancelling booking %s: %s\n", booking.ID, err.Error())
		return nil, err
	}
	booking.Status = types.BOOKING_CANCELED

	common.Audit(ctx, s.auditor, actor.UserID, "BOOKING_CANCELLED", "Booking", booking.ID.String())
	common.Notify(ctx, s.notifier, common.BookingNotification(booking.ID, booking.UserID, tourName(booking), common.BookingCancelled))
	return booking, nil
}

// movePayment applies status to the payment record behind reference, if
// there is one.
func movePayment(tx *gorm.DB, reference string, status types.PaymentStatus, now time.Time) error {
	var payment models.Payment
	if err := tx.Where("payment_intent_id = ?", reference).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if payment.Status == status {
		return nil
	}
	if !payment.Status.CanTransitionTo(status) {
		return ErrPaymentTransition.Withf("cannot change payment %s from %s to %s", reference, payment.Status, status)
	}
	updates := map[string]any{"status": status}
	if status == types.PAYMENT_PAID {
		updates["paid_at"] = now
	}
	return tx.Model(&models.Payment{ID: payment.ID}).Updates(updates).Error
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).
		Preload("Tour").
		Scopes(scopes.WithID(id)).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func tourName(b *models.Booking) string {
	if b.Tour == nil {
		return b.TourID.String()
	}
	return b.Tour.Name
}
