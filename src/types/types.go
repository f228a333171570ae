package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type AppEnv string

const (
	Local      AppEnv = "local"
	Test       AppEnv = "test"
	Production AppEnv = "production"
)

type Role string

const (
	ROLE_USER  Role = "User"
	ROLE_ADMIN Role = "Admin"
)

func (r Role) Valid() bool {
	return r == ROLE_USER || r == ROLE_ADMIN
}

type TourStatus string

const (
	TOUR_ACTIVE   TourStatus = "Active"
	TOUR_INACTIVE TourStatus = "Inactive"
)

func (s TourStatus) Valid() bool {
	return s == TOUR_ACTIVE || s == TOUR_INACTIVE
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "Pending"
	BOOKING_CONFIRMED BookingStatus = "Confirmed"
	BOOKING_CANCELED  BookingStatus = "Canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_CANCELED:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "Pending"
	PAYMENT_PAID     PaymentStatus = "Paid"
	PAYMENT_FAILED   PaymentStatus = "Failed"
	PAYMENT_REFUNDED PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PAYMENT_PENDING, PAYMENT_PAID, PAYMENT_FAILED, PAYMENT_REFUNDED:
		return true
	}
	return false
}

// CanTransitionTo reports whether a payment in status s may move to next.
// Pending is initial; Failed and Refunded are terminal; Refunded is only
// reachable from Paid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PAYMENT_PENDING:
		return next == PAYMENT_PAID || next == PAYMENT_FAILED
	case PAYMENT_PAID:
		return next == PAYMENT_REFUNDED
	}
	return false
}

type DiscountType string

const (
	DISCOUNT_PERCENTAGE DiscountType = "percentage"
	DISCOUNT_FIXED      DiscountType = "fixed"
)

func (d DiscountType) Valid() bool {
	return d == DISCOUNT_PERCENTAGE || d == DISCOUNT_FIXED
}

type ReviewStatus string

const (
	REVIEW_PENDING  ReviewStatus = "pending"
	REVIEW_APPROVED ReviewStatus = "approved"
	REVIEW_REJECTED ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case REVIEW_PENDING, REVIEW_APPROVED, REVIEW_REJECTED:
		return true
	}
	return false
}

type NotificationType string

const (
	NOTIFICATION_INFO    NotificationType = "info"
	NOTIFICATION_BOOKING NotificationType = "booking"
	NOTIFICATION_PAYMENT NotificationType = "payment"
	NOTIFICATION_SYSTEM  NotificationType = "system"
	NOTIFICATION_ERROR   NotificationType = "error"
)

type NotificationPriority string

const (
	PRIORITY_LOW    NotificationPriority = "low"
	PRIORITY_NORMAL NotificationPriority = "normal"
	PRIORITY_HIGH   NotificationPriority = "high"
	PRIORITY_URGENT NotificationPriority = "urgent"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == ROLE_ADMIN
}

type TravelerInfo struct {
	FirstName           string `json:"first_name" binding:"required"`
	LastName            string `json:"last_name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone,omitempty"`
	EmergencyContact    string `json:"emergency_contact,omitempty"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

type UUIDRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type CreateBookingRequestBody struct {
	TourID         uuid.UUID    `json:"tour_id" binding:"required"`
	NumberOfPeople int          `json:"number_of_people" binding:"required,min=1"`
	StartDate      time.Time    `json:"start_date" binding:"required,bookabledate"`
	TravelerInfo   TravelerInfo `json:"traveler_info" binding:"required"`
}

type UpdateBookingRequestBody struct {
	BookingID     uuid.UUID `json:"booking_id" binding:"required"`
	Status        *string   `json:"status,omitempty"`
	PaymentStatus *string   `json:"payment_status,omitempty"`
}

type UpdateBookingStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type ApplyCouponRequestBody struct {
	CouponCode string           `json:"coupon_code" binding:"required"`
	Subtotal   *decimal.Decimal `json:"subtotal" binding:"required"`
}

type CreatePaymentIntentRequestBody struct {
	BookingID  uuid.UUID `json:"booking_id" binding:"required"`
	CouponCode string    `json:"coupon_code,omitempty"`
}

type RefundRequestBody struct {
	Amount *int64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
}

type CouponRequestBody struct {
	Code            string               `json:"code" binding:"required"`
	Name            string               `json:"name,omitempty"`
	Description     string               `json:"description,omitempty"`
	DiscountType    string               `json:"discount_type" binding:"required"`
	DiscountValue   *decimal.Decimal     `json:"discount_value" binding:"required"`
	MinimumAmount   *decimal.NullDecimal `json:"minimum_amount,omitempty"`
	MaximumDiscount *decimal.NullDecimal `json:"maximum_discount,omitempty"`
	UsageLimit      *int                 `json:"usage_limit,omitempty" binding:"omitempty,min=1"`
	IsActive        *bool                `json:"is_active,omitempty"`
	ValidFrom       *time.Time           `json:"valid_from,omitempty"`
	ValidUntil      *time.Time           `json:"valid_until,omitempty"`
}

type ToggleCouponRequestBody struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CreateTourRequestBody struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description,omitempty"`
	Location       string           `json:"location" binding:"required"`
	Duration       int              `json:"duration" binding:"required,min=1"`
	PricePerPerson *decimal.Decimal `json:"price_per_person" binding:"required"`
	MaxGroupSize   int              `json:"max_group_size" binding:"required,min=1"`
	StartDates     []string         `json:"start_dates,omitempty"`
	Included       []string         `json:"included,omitempty"`
	NotIncluded    []string         `json:"not_included,omitempty"`
	Featured       bool             `json:"featured,omitempty"`
}

type UpdateTourStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type UpdateUserRoleRequestBody struct {
	Role string `json:"role" binding:"required"`
}

type TourQueryFilters struct {
	Search   string `form:"search,omitempty"`
	Location string `form:"location,omitempty"`
	MinPrice string `form:"min_price,omitempty" binding:"omitempty,numeric"`
	MaxPrice string `form:"max_price,omitempty" binding:"omitempty,numeric"`
	Featured *bool  `form:"featured,omitempty"`
}

type CreateReviewRequestBody struct {
	TourID    uuid.UUID  `json:"tour_id" binding:"required"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Rating    int        `json:"rating"`
	Title     string     `json:"title,omitempty"`
	Comment   string     `json:"comment" binding:"required"`
}

type UpdateReviewStatusRequestBody struct {
	Status string `json:"status" binding:"required"`
}

type ReviewQueryFilters struct {
	TourID string `form:"tour_id,omitempty" binding:"omitempty,uuid"`
	UserID string `form:"user_id,omitempty" binding:"omitempty,uuid"`
}

type WishlistRequestBody struct {
	TourID uuid.UUID `json:"tour_id" binding:"required"`
}
