package coupon

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/pricing"
)

var (
	// ErrUsageLimitExceeded indicates the user has exhausted the per-user quota.
	ErrUsageLimitExceeded = errors.New("coupon usage limit exceeded")
	// ErrInactive is returned when the coupon has been switched off.
	ErrInactive = errors.New("coupon is not active")
	// ErrExpired is returned when the coupon expiration time has passed.
	ErrExpired = errors.New("coupon has expired")
	// ErrBelowMinimum indicates the order amount did not meet the coupon requirement.
	ErrBelowMinimum = errors.New("order amount is below the coupon minimum")
)

// Rule captures the redemption constraints of a coupon.
type Rule struct {
	Code             string
	Type             dbgen.CouponType
	Amount           decimal.Decimal
	MinOrderAmount   decimal.Decimal
	MaxAmountApplied decimal.Decimal
	UsageLimit       int32
	ExpirationTime   *time.Time
	Active           bool
}

// RuleFromModel converts the generated sqlc model into a Rule used for evaluation.
func RuleFromModel(c dbgen.Coupon) Rule {
	rule := Rule{
		Code:             c.Code,
		Type:             c.CouponType,
		Amount:           c.Amount,
		MinOrderAmount:   c.MinOrderAmount,
		MaxAmountApplied: c.MaxAmountApplied,
		UsageLimit:       c.UsageLimit,
		Active:           c.Active,
	}
	if c.ExpirationTime.Valid {
		rule.ExpirationTime = &c.ExpirationTime.Time
	}
	return rule
}

// CheckUsage enforces the per-user quota against an existing ledger count.
func (r Rule) CheckUsage(used int32) error {
	if used >= r.UsageLimit {
		return ErrUsageLimitExceeded
	}
	return nil
}

// CheckRedeemable verifies the coupon is active and unexpired at the provided instant.
func (r Rule) CheckRedeemable(now time.Time) error {
	if !r.Active {
		return ErrInactive
	}
	if r.ExpirationTime != nil && r.ExpirationTime.Before(now) {
		return ErrExpired
	}
	return nil
}

// CheckMinimum gates redemption on the aggregated order amount.
func (r Rule) CheckMinimum(amount decimal.Decimal) error {
	if amount.LessThan(r.MinOrderAmount) {
		return ErrBelowMinimum
	}
	return nil
}

// Discount computes the effective discount for the given order amount.
// Percentage coupons round to two decimal places with midpoints going
// down; the result is always capped at MaxAmountApplied.
func (r Rule) Discount(amount decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch r.Type {
	case dbgen.CouponTypePERCENTAGE:
		raw = pricing.RoundHalfDown(amount.Mul(r.Amount).Shift(-2), 2)
	case dbgen.CouponTypeFIXED:
		raw = r.Amount
	default:
		return decimal.Zero
	}
	if raw.GreaterThan(r.MaxAmountApplied) {
		return r.MaxAmountApplied
	}
	if raw.IsNegative() {
		return decimal.Zero
	}
	return raw
}

// ParseType maps a free-form coupon type string onto the closed enum.
func ParseType(value string) (dbgen.CouponType, bool) {
	switch dbgen.CouponType(strings.ToUpper(strings.TrimSpace(value))) {
	case dbgen.CouponTypePERCENTAGE:
		return dbgen.CouponTypePERCENTAGE, true
	case dbgen.CouponTypeFIXED:
		return dbgen.CouponTypeFIXED, true
	default:
		return "", false
	}
}
