// Package coupons validates coupon codes against order subtotals and
// manages the coupon catalogue.
package coupons

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

type Service struct {
	db      *gorm.DB
	auditor common.Auditor
	now     func() time.Time
}

func NewService(db *gorm.DB, auditor common.Auditor) *Service {
	return &Service{db: db, auditor: auditor, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type Result struct {
	Discount   decimal.Decimal    `json:"discount"`
	CouponCode string             `json:"coupon_code"`
	Type       types.DiscountType `json:"type"`

	Coupon *models.Coupon `json:"-"`
}

// Apply validates code against subtotal and computes the discount.
// Nothing is written; redemption happens at checkout.
func (s *Service) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (*Result, error) {
	if !subtotal.IsPositive() {
		return nil, ErrInvalidSubtotal
	}
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrInvalidCode
	}
	var coupon models.Coupon
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if err := Check(&coupon, subtotal, s.now()); err != nil {
		return nil, err
	}
	return &Result{
		Discount:   ComputeDiscount(&coupon, subtotal),
		CouponCode: coupon.Code,
		Type:       coupon.DiscountType,
		Coupon:     &coupon,
	}, nil
}

// Redeem counts one use of the coupon, refusing once the usage limit is
// reached.
func Redeem(tx *gorm.DB, couponID uuid.UUID) error {
	res := tx.
		Model(&models.Coupon{}).
		Where("id = ?", couponID).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsageLimit
	}
	return nil
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Service) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.db.WithContext(ctx).Scopes(scopes.Newest).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(id)).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func validate(in *types.CouponRequestBody) (string, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return "", ErrCodeRequired
	}
	dt := types.DiscountType(in.DiscountType)
	if !dt.Valid() {
		return "", ErrInvalidType
	}
	if in.DiscountValue == nil {
		return "", ErrValueRequired
	}
	if !in.DiscountValue.IsPositive() {
		return "", ErrInvalidValue
	}
	if dt == types.DISCOUNT_PERCENTAGE && in.DiscountValue.GreaterThan(decimal.NewFromInt(1)) {
		return "", ErrPercentageRange
	}
	for _, amt := range []*decimal.NullDecimal{in.MinimumAmount, in.MaximumDiscount} {
		if amt != nil && amt.Valid && amt.Decimal.IsNegative() {
			return "", ErrNegativeAmount
		}
	}
	if in.ValidFrom != nil && in.ValidUntil != nil && !in.ValidUntil.After(*in.ValidFrom) {
		return "", ErrInvalidValidity
	}
	return code, nil
}

func (s *Service) codeTaken(tx *gorm.DB, code string, except *uuid.UUID) (bool, error) {
	var count int64
	q := tx.Model(&models.Coupon{}).Where("UPPER(code) = ?", code)
	if except != nil {
		q = q.Where("id <> ?", *except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func nullable(d *decimal.NullDecimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return *d
}

func (s *Service) Create(ctx context.Context, actor types.Actor, in types.CouponRequestBody) (*models.Coupon, error) {
	code, err := validate(&in)
	if err != nil {
		return nil, err
	}
	coupon := models.Coupon{
		Code:            code,
		Name:            in.Name,
		Description:     in.Description,
		DiscountType:    types.DiscountType(in.DiscountType),
		DiscountValue:   *in.DiscountValue,
		MinimumAmount:   nullable(in.MinimumAmount),
		MaximumDiscount: nullable(in.MaximumDiscount),
		UsageLimit:      in.UsageLimit,
		IsActive:        true,
		ValidUntil:      in.ValidUntil,
		CreatedBy:       &actor.UserID,
	}
	if in.IsActive != nil {
		coupon.IsActive = *in.IsActive
	}
	if in.ValidFrom != nil {
		coupon.ValidFrom = *in.ValidFrom
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.codeTaken(tx, code, nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}
		return tx.Create(&coupon).Error
	})
	if err != nil {
		log.Printf("[Coupon] Error creating coupon %s: %s\n", code, err.Error())
		return nil, err
	}
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Created coupon %s", coupon.Code), "Coupon", coupon.ID.String())
	return &coupon, nil
}

func (s *Service) Update(ctx context.Context, actor types.Actor, id uuid.UUID, in types.CouponRequestBody) (*models.Coupon, error) {
	code, err := validate(&in)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"code":             code,
		"name":             in.Name,
		"description":      in.Description,
		"discount_type":    types.DiscountType(in.DiscountType),
		"discount_value":   *in.DiscountValue,
		"minimum_amount":   nullable(in.MinimumAmount),
		"maximum_discount": nullable(in.MaximumDiscount),
		"usage_limit":      in.UsageLimit,
		"valid_until":      in.ValidUntil,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.ValidFrom != nil {
		updates["valid_from"] = *in.ValidFrom
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.codeTaken(tx, code, &id)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateCode
		}
		return tx.Model(&models.Coupon{ID: id}).Updates(updates).Error
	})
	if err != nil {
		log.Printf("[Coupon] Error updating coupon %s: %s\n", id, err.Error())
		return nil, err
	}
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Updated coupon %s", code), "Coupon", id.String())
	return s.Get(ctx, id)
}

// Toggle sets the active flag. Bookings already discounted are untouched.
func (s *Service) Toggle(ctx context.Context, actor types.Actor, id uuid.UUID, active bool) (*models.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Coupon{ID: id}).
		Update("is_active", active).
		Error; err != nil {
		return nil, err
	}
	coupon.IsActive = active
	state := "Deactivated"
	if active {
		state = "Activated"
	}
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("%s coupon %s", state, coupon.Code), "Coupon", id.String())
	return coupon, nil
}

func (s *Service) Delete(ctx context.Context, actor types.Actor, id uuid.UUID) error {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id).Error; err != nil {
		return err
	}
	common.Audit(ctx, s.auditor, actor.UserID, fmt.Sprintf("Deleted coupon %s", coupon.Code), "Coupon", id.String())
	return nil
}
