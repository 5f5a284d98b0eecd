package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/obs"
	"github.com/naeemhossain01/flexfume-backend/internal/pricing"
)

// Querier captures the database methods required by the coupon ledger.
type Querier interface {
	GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error)
	GetCouponUsageForUpdate(ctx context.Context, arg dbgen.GetCouponUsageForUpdateParams) (dbgen.CouponUsage, error)
	GetCartSnapshot(ctx context.Context, ids []pgtype.UUID) ([]dbgen.GetCartSnapshotRow, error)
	UpsertCouponUsage(ctx context.Context, arg dbgen.UpsertCouponUsageParams) (dbgen.CouponUsage, error)
	DeleteCouponUsage(ctx context.Context, arg dbgen.DeleteCouponUsageParams) (int64, error)
	GetCouponUsageStats(ctx context.Context, couponID pgtype.UUID) (dbgen.GetCouponUsageStatsRow, error)
	GetCouponByID(ctx context.Context, id pgtype.UUID) (dbgen.Coupon, error)
}

// Stats aggregates redemption figures for a single coupon.
type Stats struct {
	CouponID     string          `json:"couponId"`
	Code         string          `json:"code"`
	TotalUsage   int64           `json:"totalUsage"`
	TotalSavings decimal.Decimal `json:"totalSavings"`
	UniqueUsers  int64           `json:"uniqueUsers"`
}

// Service encapsulates coupon evaluation and the usage ledger.
type Service struct {
	Q    *dbgen.Queries
	Pool *pgxpool.Pool
	Now  func() time.Time
}

// Apply validates the coupon against the caller's cart rows and records
// the redemption. The usage row is locked for the duration of the
// transaction so repeated applications by the same user serialize and
// at most UsageLimit of them succeed. It returns the payable amount
// after the discount.
func (s *Service) Apply(ctx context.Context, userID pgtype.UUID, cartItemIDs []pgtype.UUID, code string) (decimal.Decimal, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return decimal.Zero, errors.New("coupon service not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return decimal.Zero, common.Internal(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	final, err := s.apply(ctx, s.Q.WithTx(tx), userID, cartItemIDs, code)
	if err != nil {
		if obs.CouponApplyTotal != nil {
			obs.CouponApplyTotal.WithLabelValues("rejected").Inc()
		}
		return decimal.Zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, common.Internal(err)
	}
	if obs.CouponApplyTotal != nil {
		obs.CouponApplyTotal.WithLabelValues("applied").Inc()
	}
	return final, nil
}

func (s *Service) apply(ctx context.Context, q Querier, userID pgtype.UUID, cartItemIDs []pgtype.UUID, code string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return decimal.Zero, common.InvalidRequest("coupon code is required")
	}
	c, err := q.GetCouponByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, common.NotFound("coupon not found")
		}
		return decimal.Zero, common.Internal(err)
	}
	rule := RuleFromModel(c)

	usage, err := q.GetCouponUsageForUpdate(ctx, dbgen.GetCouponUsageForUpdateParams{CouponID: c.ID, UserID: userID})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, common.Internal(err)
	}
	if err == nil {
		if err := rule.CheckUsage(usage.UsageCount); err != nil {
			return decimal.Zero, common.InvalidRequest(err.Error())
		}
	}
	if err := rule.CheckRedeemable(s.now()); err != nil {
		return decimal.Zero, common.InvalidRequest(err.Error())
	}

	amount, err := s.cartAmount(ctx, q, cartItemIDs)
	if err != nil {
		return decimal.Zero, err
	}
	if err := rule.CheckMinimum(amount); err != nil {
		return decimal.Zero, common.InvalidRequest(err.Error())
	}

	discount := rule.Discount(amount)
	final := amount.Sub(discount)

	// Two first-time applications can race past the missing-row lock.
	// The conflict branch increments under the row lock, and the
	// usage_count guard rechecks the quota for the transaction that
	// loses the insert.
	_, err = q.UpsertCouponUsage(ctx, dbgen.UpsertCouponUsageParams{
		CouponID:         c.ID,
		UserID:           userID,
		DiscountedAmount: discount,
		UsageLimit:       rule.UsageLimit,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, common.InvalidRequest(ErrUsageLimitExceeded.Error())
		}
		return decimal.Zero, common.Internal(err)
	}
	return final, nil
}

func (s *Service) cartAmount(ctx context.Context, q Querier, cartItemIDs []pgtype.UUID) (decimal.Decimal, error) {
	if len(cartItemIDs) == 0 {
		return decimal.Zero, common.InvalidRequest("cart items are required")
	}
	rows, err := q.GetCartSnapshot(ctx, cartItemIDs)
	if err != nil {
		return decimal.Zero, common.InvalidRequest("unable to read cart items")
	}
	lines := make([]pricing.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, pricing.Line{
			Quantity:        row.Quantity,
			UnitPrice:       row.UnitPrice,
			DiscountPercent: row.DiscountPercentage,
		})
	}
	return pricing.CartTotal(lines), nil
}

// DeleteUsage removes the caller's ledger entry for the given coupon code.
func (s *Service) DeleteUsage(ctx context.Context, userID pgtype.UUID, code string) error {
	if s == nil || s.Q == nil {
		return errors.New("coupon service not configured")
	}
	return s.deleteUsage(ctx, s.Q, userID, code)
}

func (s *Service) deleteUsage(ctx context.Context, q Querier, userID pgtype.UUID, code string) error {
	c, err := q.GetCouponByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NotFound("coupon not found")
		}
		return common.Internal(err)
	}
	deleted, err := q.DeleteCouponUsage(ctx, dbgen.DeleteCouponUsageParams{CouponID: c.ID, UserID: userID})
	if err != nil {
		return common.Internal(err)
	}
	if deleted == 0 {
		return common.NotFound("coupon usage not found")
	}
	return nil
}

// UsageStats returns aggregate redemption figures for a coupon.
func (s *Service) UsageStats(ctx context.Context, couponID pgtype.UUID) (Stats, error) {
	if s == nil || s.Q == nil {
		return Stats{}, errors.New("coupon service not configured")
	}
	return s.usageStats(ctx, s.Q, couponID)
}

func (s *Service) usageStats(ctx context.Context, q Querier, couponID pgtype.UUID) (Stats, error) {
	c, err := q.GetCouponByID(ctx, couponID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stats{}, common.NotFound("coupon not found")
		}
		return Stats{}, common.Internal(err)
	}
	row, err := q.GetCouponUsageStats(ctx, c.ID)
	if err != nil {
		return Stats{}, common.Internal(err)
	}
	return Stats{
		CouponID:     common.UUIDString(c.ID),
		Code:         c.Code,
		TotalUsage:   row.TotalUsage,
		TotalSavings: row.TotalSavings,
		UniqueUsers:  row.UniqueUsers,
	}, nil
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
