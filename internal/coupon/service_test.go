package coupon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

type stubQueries struct {
	coupon   dbgen.Coupon
	usage    *dbgen.CouponUsage
	racedRow *dbgen.CouponUsage
	snapshot []dbgen.GetCartSnapshotRow

	upserted *dbgen.UpsertCouponUsageParams
	deleted  int64
}

func (s *stubQueries) GetCouponByCode(ctx context.Context, code string) (dbgen.Coupon, error) {
	if s.coupon.Code == "" || s.coupon.Code != code {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	return s.coupon, nil
}

func (s *stubQueries) GetCouponByID(ctx context.Context, id pgtype.UUID) (dbgen.Coupon, error) {
	if !common.UUIDEqual(s.coupon.ID, id) {
		return dbgen.Coupon{}, pgx.ErrNoRows
	}
	return s.coupon, nil
}

func (s *stubQueries) GetCouponUsageForUpdate(ctx context.Context, arg dbgen.GetCouponUsageForUpdateParams) (dbgen.CouponUsage, error) {
	if s.usage == nil {
		return dbgen.CouponUsage{}, pgx.ErrNoRows
	}
	return *s.usage, nil
}

func (s *stubQueries) GetCartSnapshot(ctx context.Context, ids []pgtype.UUID) ([]dbgen.GetCartSnapshotRow, error) {
	return s.snapshot, nil
}

// UpsertCouponUsage mirrors the guarded insert: a conflicting row is
// incremented unless its count already reached the limit, in which case
// no row comes back.
func (s *stubQueries) UpsertCouponUsage(ctx context.Context, arg dbgen.UpsertCouponUsageParams) (dbgen.CouponUsage, error) {
	existing := s.usage
	if existing == nil {
		existing = s.racedRow
	}
	if existing == nil {
		s.upserted = &arg
		return dbgen.CouponUsage{CouponID: arg.CouponID, UserID: arg.UserID, UsageCount: 1, DiscountedAmount: arg.DiscountedAmount}, nil
	}
	if existing.UsageCount >= arg.UsageLimit {
		return dbgen.CouponUsage{}, pgx.ErrNoRows
	}
	s.upserted = &arg
	return dbgen.CouponUsage{ID: existing.ID, CouponID: arg.CouponID, UserID: arg.UserID, UsageCount: existing.UsageCount + 1, DiscountedAmount: arg.DiscountedAmount}, nil
}

func (s *stubQueries) DeleteCouponUsage(ctx context.Context, arg dbgen.DeleteCouponUsageParams) (int64, error) {
	return s.deleted, nil
}

func (s *stubQueries) GetCouponUsageStats(ctx context.Context, couponID pgtype.UUID) (dbgen.GetCouponUsageStatsRow, error) {
	return dbgen.GetCouponUsageStatsRow{TotalUsage: 3, TotalSavings: dec("12.50"), UniqueUsers: 2}, nil
}

func newCoupon() dbgen.Coupon {
	return dbgen.Coupon{
		ID:               pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Code:             "SUMMER",
		CouponType:       dbgen.CouponTypePERCENTAGE,
		Amount:           dec("10"),
		MinOrderAmount:   dec("50"),
		MaxAmountApplied: dec("100"),
		UsageLimit:       2,
		ExpirationTime:   pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
		Active:           true,
	}
}

func snapshotRows() []dbgen.GetCartSnapshotRow {
	return []dbgen.GetCartSnapshotRow{
		{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, Quantity: 2, UnitPrice: dec("25.00")},
		{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, Quantity: 1, UnitPrice: dec("40.00"), DiscountPercentage: 10},
	}
}

func userPg() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func cartIDs() []pgtype.UUID {
	return []pgtype.UUID{{Bytes: uuid.New(), Valid: true}}
}

func TestApplyFirstUseCreatesLedgerRow(t *testing.T) {
	stub := &stubQueries{coupon: newCoupon(), snapshot: snapshotRows()}
	svc := &Service{}
	// Cart amount is 2x25 + 1x36 = 86; 10% discount is 8.60.
	final, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Equal(dec("77.40")) {
		t.Fatalf("expected 77.40, got %s", final)
	}
	if stub.upserted == nil {
		t.Fatal("expected a ledger row to be created")
	}
	if !stub.upserted.DiscountedAmount.Equal(dec("8.60")) {
		t.Fatalf("expected discount 8.60, got %s", stub.upserted.DiscountedAmount)
	}
}

func TestApplyReapplicationOverwritesDiscount(t *testing.T) {
	c := newCoupon()
	usage := dbgen.CouponUsage{
		ID:               pgtype.UUID{Bytes: uuid.New(), Valid: true},
		CouponID:         c.ID,
		UsageCount:       1,
		DiscountedAmount: dec("99.99"),
	}
	stub := &stubQueries{coupon: c, usage: &usage, snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.upserted == nil {
		t.Fatal("expected the ledger row to be updated")
	}
	if !stub.upserted.DiscountedAmount.Equal(dec("8.60")) {
		t.Fatalf("expected discount overwritten to 8.60, got %s", stub.upserted.DiscountedAmount)
	}
}

func TestApplyConcurrentFirstUseWithinLimit(t *testing.T) {
	c := newCoupon()
	raced := dbgen.CouponUsage{
		ID:         pgtype.UUID{Bytes: uuid.New(), Valid: true},
		CouponID:   c.ID,
		UsageCount: 1,
	}
	stub := &stubQueries{coupon: c, racedRow: &raced, snapshot: snapshotRows()}
	svc := &Service{}
	final, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !final.Equal(dec("77.40")) {
		t.Fatalf("expected 77.40, got %s", final)
	}
	if stub.upserted == nil {
		t.Fatal("expected the raced row to be incremented")
	}
}

func TestApplyConcurrentFirstUseAtLimit(t *testing.T) {
	c := newCoupon()
	c.UsageLimit = 1
	raced := dbgen.CouponUsage{
		ID:         pgtype.UUID{Bytes: uuid.New(), Valid: true},
		CouponID:   c.ID,
		UsageCount: 1,
	}
	stub := &stubQueries{coupon: c, racedRow: &raced, snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	assertInvalidRequest(t, err)
	if stub.upserted != nil {
		t.Fatal("ledger must not be touched past the usage limit")
	}
}

func TestApplyUsageLimitExceeded(t *testing.T) {
	c := newCoupon()
	usage := dbgen.CouponUsage{ID: pgtype.UUID{Bytes: uuid.New(), Valid: true}, CouponID: c.ID, UsageCount: 2}
	stub := &stubQueries{coupon: c, usage: &usage, snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	assertInvalidRequest(t, err)
	if stub.upserted != nil {
		t.Fatal("ledger must not be touched when the limit is exceeded")
	}
}

func TestApplyBelowMinimumLeavesLedgerUntouched(t *testing.T) {
	c := newCoupon()
	c.MinOrderAmount = dec("500")
	stub := &stubQueries{coupon: c, snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	assertInvalidRequest(t, err)
	if stub.upserted != nil {
		t.Fatal("ledger must not be touched below the minimum order amount")
	}
}

func TestApplyExpiredCoupon(t *testing.T) {
	c := newCoupon()
	c.ExpirationTime = pgtype.Timestamptz{Time: time.Now().Add(-time.Hour), Valid: true}
	stub := &stubQueries{coupon: c, snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "SUMMER")
	assertInvalidRequest(t, err)
}

func TestApplyUnknownCode(t *testing.T) {
	stub := &stubQueries{snapshot: snapshotRows()}
	svc := &Service{}
	_, err := svc.apply(context.Background(), stub, userPg(), cartIDs(), "NOPE")
	assertCode(t, err, "NOT_FOUND")
}

func TestDeleteUsageMissingRow(t *testing.T) {
	stub := &stubQueries{coupon: newCoupon(), deleted: 0}
	svc := &Service{}
	err := svc.deleteUsage(context.Background(), stub, userPg(), "SUMMER")
	assertCode(t, err, "NOT_FOUND")
}

func TestUsageStats(t *testing.T) {
	c := newCoupon()
	stub := &stubQueries{coupon: c}
	svc := &Service{}
	stats, err := svc.usageStats(context.Background(), stub, c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalUsage != 3 || stats.UniqueUsers != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.TotalSavings.Equal(dec("12.50")) {
		t.Fatalf("expected savings 12.50, got %s", stats.TotalSavings)
	}
}

func assertInvalidRequest(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, "INVALID_REQUEST")
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}
