// Package payments reconciles local payment records with the payment
// gateway: intent creation, webhook outcomes, refunds and bulk sync.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"tourbook/src/common"
	"tourbook/src/coupons"
	"tourbook/src/models"
	"tourbook/src/models/scopes"
	"tourbook/src/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// MinimumCharge is the smallest amount the gateway accepts, in minor units.
	MinimumCharge int64 = 50

	SyncWindow = 30 * 24 * time.Hour
	SyncLimit  = 100
)

type Service struct {
	db          *gorm.DB
	gateway     Gateway
	coupons     *coupons.Service
	notifier    common.Notifier
	auditor     common.Auditor
	currency    string
	itemTimeout time.Duration
	now         func() time.Time
}

func NewService(db *gorm.DB, gateway Gateway, couponService *coupons.Service, notifier common.Notifier, auditor common.Auditor) *Service {
	return &Service{
		db:          db,
		gateway:     gateway,
		coupons:     couponService,
		notifier:    notifier,
		auditor:     auditor,
		currency:    "usd",
		itemTimeout: 10 * time.Second,
		now:         time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithCurrency(currency string) *Service {
	if currency != "" {
		s.currency = strings.ToLower(currency)
	}
	return s
}

// WithItemTimeout bounds each item of a bulk sync.
func (s *Service) WithItemTimeout(d time.Duration) *Service {
	s.itemTimeout = d
	return s
}

// ToMinorUnits converts a decimal amount to cents.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type IntentResult struct {
	ClientSecret    string          `json:"client_secret"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Amount          int64           `json:"amount"`
	Currency        string          `json:"currency"`
	Discount        decimal.Decimal `json:"discount"`
	CouponCode      string          `json:"coupon_code,omitempty"`
}

// CreateIntent opens a gateway payment intent for the caller's booking. A
// booking that already references a pending intent gets that intent back.
func (s *Service) CreateIntent(ctx context.Context, actor types.Actor, in types.CreatePaymentIntentRequestBody) (*IntentResult, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(in.BookingID)).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, ErrNotOwner
	}
	if booking.Status == types.BOOKING_CANCELED {
		return nil, ErrBookingCanceled
	}
	if booking.PaymentStatus != types.PAYMENT_PENDING {
		return nil, ErrAlreadySettled
	}

	if booking.PaymentReference != nil {
		existing, err := s.existingIntent(ctx, &booking)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	discount := decimal.Zero
	var applied *coupons.Result
	if code := coupons.NormalizeCode(in.CouponCode); code != "" {
		res, err := s.coupons.Apply(ctx, code, booking.TotalPrice)
		if err != nil {
			return nil, err
		}
		applied = res
		discount = res.Discount
	}
	amount := ToMinorUnits(booking.TotalPrice.Sub(discount))
	if amount < MinimumCharge {
		return nil, ErrAmountTooSmall
	}

	req := IntentRequest{
		Amount:         amount,
		Currency:       s.currency,
		BookingID:      booking.ID.String(),
		UserID:         actor.UserID.String(),
		IdempotencyKey: fmt.Sprintf("booking-%s-%d", booking.ID, amount),
	}
	if applied != nil {
		req.CouponCode = applied.CouponCode
	}
	gp, err := s.gateway.CreatePaymentIntent(ctx, req)
	if err != nil {
		log.Printf("[Payment] Error creating payment intent for booking %s: %s\n", booking.ID, err.Error())
		return nil, ErrGatewayFailure.Wrap(err)
	}

	payment := models.Payment{
		BookingID:       &booking.ID,
		PaymentIntentID: gp.ID,
		Amount:          amount,
		Currency:        s.currency,
		Status:          types.PAYMENT_PENDING,
		GatewayStatus:   gp.Status,
	}
	if applied != nil {
		payment.CouponCode = &applied.CouponCode
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{ID: booking.ID}).
			Update("payment_reference", gp.ID).
			Error; err != nil {
			return err
		}
		if applied != nil {
			return coupons.Redeem(tx, applied.Coupon.ID)
		}
		return nil
	})
	if err != nil {
		log.Printf("[Payment] Error recording payment intent %s: %s\n", gp.ID, err.Error())
		return nil, err
	}

	res := &IntentResult{
		ClientSecret:    gp.ClientSecret,
		PaymentIntentID: gp.ID,
		Amount:          amount,
		Currency:        s.currency,
		Discount:        discount,
	}
	if applied != nil {
		res.CouponCode = applied.CouponCode
	}
	return res, nil
}

// existingIntent returns the booking's pending intent, or nil when the
// reference no longer points at a pending payment.
func (s *Service) existingIntent(ctx context.Context, booking *models.Booking) (*IntentResult, error) {
	intentID := *booking.PaymentReference
	var payment models.Payment
	err := s.db.WithContext(ctx).
		Scopes(scopes.WithPendingStatus).
		Where("payment_intent_id = ?", intentID).
		First(&payment).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	gp, err := s.gateway.RetrievePayment(ctx, intentID)
	if err != nil {
		log.Printf("[Payment] Error retrieving payment intent %s: %s\n", intentID, err.Error())
		return nil, ErrGatewayFailure.Wrap(err)
	}
	res := &IntentResult{
		ClientSecret:    gp.ClientSecret,
		PaymentIntentID: gp.ID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Discount:        decimal.Zero,
	}
	if payment.CouponCode != nil {
		res.CouponCode = *payment.CouponCode
		charged := decimal.New(payment.Amount, -2)
		if d := booking.TotalPrice.Sub(charged); d.IsPositive() {
			res.Discount = d.Round(2)
		}
	}
	return res, nil
}

// RecordOutcome moves the payment for intentID to status and mirrors it on
// the booking. Reapplying the current status changes nothing; transitions
// the state machine forbids and unknown intents are ignored.
func (s *Service) RecordOutcome(ctx context.Context, intentID string, status types.PaymentStatus) (Outcome, error) {
	var payment models.Payment
	outcome := OutcomeIgnored
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_intent_id = ?", intentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[Payment] No local payment for intent %s\n", intentID)
				return nil
			}
			return err
		}
		if payment.Status == status {
			outcome = OutcomeUnchanged
			return nil
		}
		if !payment.Status.CanTransitionTo(status) {
			log.Printf("[Payment] Ignoring %s -> %s for intent %s\n", payment.Status, status, intentID)
			return nil
		}
		if err := s.transition(tx, &payment, status); err != nil {
			return err
		}
		outcome = OutcomeApplied
		return nil
	})
	if err != nil {
		log.Printf("[Payment] Error recording outcome for intent %s: %s\n", intentID, err.Error())
		return OutcomeIgnored, err
	}
	if outcome == OutcomeApplied {
		notice := common.PaymentSucceeded
		if status == types.PAYMENT_FAILED {
			notice = common.PaymentFailed
		}
		common.Notify(ctx, s.notifier, common.PaymentNotification(intentID, payment.Amount, payment.Currency, notice, payment.BookingID))
	}
	return outcome, nil
}

// transition writes status to payment and its booking. Callers have
// already checked the state machine.
func (s *Service) transition(tx *gorm.DB, payment *models.Payment, status types.PaymentStatus) error {
	updates := map[string]any{"status": status}
	bookingUpdates := map[string]any{"payment_status": status}
	if status == types.PAYMENT_PAID {
		now := s.now().UTC()
		updates["paid_at"] = now
		bookingUpdates["payment_date"] = now
	}
	if err := tx.Model(&models.Payment{ID: payment.ID}).Updates(updates).Error; err != nil {
		return err
	}
	payment.Status = status
	if payment.BookingID == nil {
		return nil
	}
	return tx.
		Model(&models.Booking{ID: *payment.BookingID}).
		Updates(bookingUpdates).
		Error
}

type RefundResult struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Full   bool   `json:"full"`
}

// Refund refunds a paid payment through the gateway. amount is in minor
// units; nil, or anything not below the original amount, refunds in full.
func (s *Service) Refund(ctx context.Context, actor types.Actor, paymentID uuid.UUID, amount *int64) (*RefundResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	var payment models.Payment
	if err := s.db.WithContext(ctx).
		Preload("Booking.Tour").
		Scopes(scopes.WithID(paymentID)).
		First(&payment).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != types.PAYMENT_PAID {
		return nil, ErrNotRefundable
	}

	var requested *int64
	if amount != nil && *amount < payment.Amount {
		requested = amount
	}
	refund, err := s.gateway.CreateRefund(ctx, payment.PaymentIntentID, requested)
	if err != nil {
		log.Printf("[Payment] Error refunding %s: %s\n", payment.PaymentIntentID, err.Error())
		return nil, ErrGatewayFailure.Wrap(err)
	}
	if refund.Status == "failed" || refund.Status == "canceled" {
		log.Printf("[Payment] Refund %s for %s ended as %s\n", refund.ID, payment.PaymentIntentID, refund.Status)
		return nil, ErrRefundFailed
	}
	full := refund.Amount >= payment.Amount

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Payment{}).
			Where("id = ? AND status = ?", payment.ID, types.PAYMENT_PAID).
			Updates(map[string]any{
				"status":        types.PAYMENT_REFUNDED,
				"refund_amount": refund.Amount,
				"refund_id":     refund.ID,
				"refunded_at":   s.now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotRefundable
		}
		if payment.BookingID == nil {
			return nil
		}
		bookingUpdates := map[string]any{"payment_status": types.PAYMENT_REFUNDED}
		if full {
			bookingUpdates["status"] = types.BOOKING_CANCELED
		}
		return tx.Model(&models.Booking{ID: *payment.BookingID}).Updates(bookingUpdates).Error
	})
	if err != nil {
		log.Printf("[Payment] Refund %s succeeded at the gateway but was not recorded: %s\n", refund.ID, err.Error())
		return nil, err
	}

	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Refunded %d of payment %s", refund.Amount, payment.PaymentIntentID), "Payment", payment.ID.String())
	common.Notify(ctx, s.notifier, common.PaymentNotification(payment.PaymentIntentID, refund.Amount, payment.Currency, common.PaymentRefunded, payment.BookingID))
	if b := payment.Booking; b != nil && b.Tour != nil {
		common.Notify(ctx, s.notifier, common.BookingNotification(b.ID, b.UserID, b.Tour.Name, common.BookingRefunded))
	}
	return &RefundResult{ID: refund.ID, Amount: refund.Amount, Status: refund.Status, Full: full}, nil
}

type SyncError struct {
	PaymentIntentID string `json:"payment_intent_id"`
	Error           string `json:"error"`
}

type SyncReport struct {
	Processed int         `json:"processed"`
	Created   int         `json:"created"`
	Updated   int         `json:"updated"`
	Errors    []SyncError `json:"errors"`
}

// Sync pulls the gateway's recent payments and reconciles each one with
// the local records. A failing item is reported and the rest continue.
func (s *Service) Sync(ctx context.Context, actor types.Actor) (*SyncReport, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	list, err := s.gateway.ListRecentPayments(ctx, s.now().Add(-SyncWindow), SyncLimit)
	if err != nil {
		log.Printf("[PaymentSync] Error listing gateway payments: %s\n", err.Error())
		return nil, ErrSyncListFailed.Wrap(err)
	}

	report := &SyncReport{Errors: []SyncError{}}
	for i := range list {
		gp := list[i]
		created, err := s.syncItem(ctx, &gp)
		report.Processed++
		if err != nil {
			log.Printf("[PaymentSync] Error syncing %s: %s\n", gp.ID, err.Error())
			report.Errors = append(report.Errors, SyncError{PaymentIntentID: gp.ID, Error: err.Error()})
			continue
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}
	log.Printf("[PaymentSync] processed=%d created=%d updated=%d errors=%d\n", report.Processed, report.Created, report.Updated, len(report.Errors))
	return report, nil
}

// ScheduledSync runs Sync without a caller, for the background job.
func (s *Service) ScheduledSync() {
	if _, err := s.Sync(context.Background(), types.Actor{Role: types.ROLE_ADMIN}); err != nil {
		log.Printf("[PaymentSync] Scheduled sync failed: %s\n", err.Error())
	}
}

func (s *Service) syncItem(ctx context.Context, gp *GatewayPayment) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.itemTimeout)
	defer cancel()

	mapped, ok := MapGatewayStatus(gp.Status)
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Where("payment_intent_id = ?", gp.ID).First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return s.createFromGateway(tx, gp, mapped, ok)
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{ID: payment.ID}).Updates(map[string]any{
			"gateway_status":      gp.Status,
			"payment_method_type": gp.MethodType,
			"card_brand":          gp.CardBrand,
			"card_last4":          gp.CardLast4,
		}).Error; err != nil {
			return err
		}
		if ok && mapped != payment.Status && payment.Status.CanTransitionTo(mapped) {
			return s.transition(tx, &payment, mapped)
		}
		return nil
	})
	return created, err
}

// createFromGateway records a gateway payment with no local row. When its
// metadata names a local booking, the booking picks up the reference and,
// where the state machine allows, the payment status.
func (s *Service) createFromGateway(tx *gorm.DB, gp *GatewayPayment, mapped types.PaymentStatus, ok bool) error {
	payment := models.Payment{
		PaymentIntentID:   gp.ID,
		Amount:            gp.Amount,
		Currency:          gp.Currency,
		Status:            types.PAYMENT_PENDING,
		GatewayStatus:     gp.Status,
		PaymentMethodType: gp.MethodType,
		CardBrand:         gp.CardBrand,
		CardLast4:         gp.CardLast4,
	}
	if ok {
		payment.Status = mapped
	}
	if payment.Status == types.PAYMENT_PAID {
		now := s.now().UTC()
		payment.PaidAt = &now
	}
	var booking models.Booking
	if id, err := uuid.Parse(gp.BookingID); err == nil {
		err := tx.Scopes(scopes.WithID(id)).First(&booking).Error
		if err == nil {
			payment.BookingID = &booking.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if err := tx.Create(&payment).Error; err != nil {
		return err
	}
	if payment.BookingID == nil {
		return nil
	}

	updates := map[string]any{}
	if booking.PaymentReference == nil || payment.Status != types.PAYMENT_PENDING {
		updates["payment_reference"] = payment.PaymentIntentID
	}
	if booking.PaymentStatus != payment.Status && booking.PaymentStatus.CanTransitionTo(payment.Status) {
		updates["payment_status"] = payment.Status
		if payment.PaidAt != nil {
			updates["payment_date"] = *payment.PaidAt
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Booking{ID: booking.ID}).Updates(updates).Error
}

type ListFilter struct {
	Status string
	Since  *time.Time
	Page   int
	Size   int
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Payment, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Payment{}).
		Preload("Booking").
		Scopes(scopes.Newest, scopes.Paginate(filter.Page, filter.Size))
	if filter.Status != "" {
		if !types.PaymentStatus(filter.Status).Valid() {
			return nil, types.NewValidationError("invalid payment status filter")
		}
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Since != nil {
		q = q.Scopes(scopes.CreatedSince(*filter.Since))
	}
	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
