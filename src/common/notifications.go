package common

import (
	"context"
	"fmt"
	"log"
	"strings"
	"tourbook/src/models"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Notifier delivers in-app notifications. Failures are reported to the
// caller, which decides whether they matter.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// Auditor appends entries to the admin audit trail.
type Auditor interface {
	Record(ctx context.Context, entry *models.AdminLog) error
}

type DBNotifier struct {
	db *gorm.DB
}

func NewDBNotifier(db *gorm.DB) *DBNotifier {
	return &DBNotifier{db: db}
}

func (n *DBNotifier) Notify(ctx context.Context, notification *models.Notification) error {
	log.Printf("[Notification] %s: %s\n", notification.Title, notification.Message)
	return n.db.WithContext(ctx).Create(notification).Error
}

type DBAuditor struct {
	db *gorm.DB
}

func NewDBAuditor(db *gorm.DB) *DBAuditor {
	return &DBAuditor{db: db}
}

func (a *DBAuditor) Record(ctx context.Context, entry *models.AdminLog) error {
	return a.db.WithContext(ctx).Create(entry).Error
}

// Notify is fire-and-forget: a failed notification is logged and dropped.
func Notify(ctx context.Context, notifier Notifier, n *models.Notification) {
	if notifier == nil || n == nil {
		return
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Printf("[Notification] Failed to create notification %q: %s\n", n.Title, err.Error())
	}
}

// Audit writes an audit entry, logging instead of returning failures.
func Audit(ctx context.Context, auditor Auditor, adminID uuid.UUID, action, entity, entityID string) {
	if auditor == nil {
		return
	}
	entry := &models.AdminLog{
		AdminID:        adminID,
		Action:         action,
		AffectedEntity: entity,
		EntityID:       entityID,
	}
	if err := auditor.Record(ctx, entry); err != nil {
		log.Printf("[AdminLog] Failed to record %q on %s %s: %s\n", action, entity, entityID, err.Error())
	}
}

type BookingAction string

const (
	BookingCreated   BookingAction = "created"
	BookingConfirmed BookingAction = "confirmed"
	BookingCancelled BookingAction = "cancelled"
	BookingRefunded  BookingAction = "refunded"
)

var bookingPriorities = map[BookingAction]types.NotificationPriority{
	BookingCreated:   types.PRIORITY_NORMAL,
	BookingConfirmed: types.PRIORITY_LOW,
	BookingCancelled: types.PRIORITY_NORMAL,
	BookingRefunded:  types.PRIORITY_HIGH,
}

func BookingNotification(bookingID, userID uuid.UUID, tourName string, action BookingAction) *models.Notification {
	var message string
	switch action {
	case BookingRefunded:
		message = fmt.Sprintf("Refund processed for %q booking", tourName)
	case BookingCreated:
		message = fmt.Sprintf("New booking created for %q", tourName)
	default:
		message = fmt.Sprintf("Booking %s for %q", action, tourName)
	}
	return &models.Notification{
		Title:             "Booking " + capitalize(string(action)),
		Message:           message,
		Type:              types.NOTIFICATION_BOOKING,
		Priority:          bookingPriorities[action],
		RelatedEntityType: "booking",
		RelatedEntityID:   bookingID.String(),
		Metadata: types.JSONB{
			"user_id":   userID.String(),
			"tour_name": tourName,
			"action":    string(action),
		},
	}
}

type PaymentNotice string

const (
	PaymentSucceeded PaymentNotice = "success"
	PaymentFailed    PaymentNotice = "failed"
	PaymentRefunded  PaymentNotice = "refunded"
)

// PaymentNotification describes a payment event. amount is in minor units.
func PaymentNotification(paymentIntentID string, amount int64, currency string, notice PaymentNotice, bookingID *uuid.UUID) *models.Notification {
	display := fmt.Sprintf("%s %s", decimal.New(amount, -2).StringFixed(2), strings.ToUpper(currency))
	n := &models.Notification{
		Type:              types.NOTIFICATION_PAYMENT,
		RelatedEntityType: "payment",
		RelatedEntityID:   paymentIntentID,
		Metadata: types.JSONB{
			"amount":            amount,
			"currency":          currency,
			"status":            string(notice),
			"payment_intent_id": paymentIntentID,
		},
	}
	if bookingID != nil {
		n.Metadata["booking_id"] = bookingID.String()
	}
	switch notice {
	case PaymentSucceeded:
		n.Title = "Payment Processed"
		n.Message = fmt.Sprintf("Payment of %s processed successfully", display)
		n.Priority = types.PRIORITY_LOW
	case PaymentFailed:
		n.Title = "Payment Failed"
		n.Message = fmt.Sprintf("Payment of %s failed", display)
		n.Priority = types.PRIORITY_HIGH
	default:
		n.Title = "Payment Refunded"
		n.Message = fmt.Sprintf("Refund of %s processed", display)
		n.Priority = types.PRIORITY_NORMAL
	}
	return n
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
