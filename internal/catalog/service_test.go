package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

type stubQueries struct {
	dbgen.Querier

	productRow   *dbgen.GetProductWithDiscountRow
	products     []dbgen.Product
	discounts    []dbgen.Discount
	category     *dbgen.Category
	productCalls int
}

func (s *stubQueries) GetProductWithDiscount(ctx context.Context, id pgtype.UUID) (dbgen.GetProductWithDiscountRow, error) {
	s.productCalls++
	if s.productRow == nil {
		return dbgen.GetProductWithDiscountRow{}, pgx.ErrNoRows
	}
	return *s.productRow, nil
}

func (s *stubQueries) ListProducts(ctx context.Context) ([]dbgen.Product, error) {
	return s.products, nil
}

func (s *stubQueries) ListDiscounts(ctx context.Context) ([]dbgen.Discount, error) {
	return s.discounts, nil
}

func (s *stubQueries) GetCategoryByID(ctx context.Context, id pgtype.UUID) (dbgen.Category, error) {
	if s.category == nil {
		return dbgen.Category{}, pgx.ErrNoRows
	}
	return *s.category, nil
}

func (s *stubQueries) SearchProducts(ctx context.Context, query string) ([]dbgen.Product, error) {
	return s.products, nil
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProductAppliesDiscount(t *testing.T) {
	row := dbgen.GetProductWithDiscountRow{
		ID:                 newID(),
		Name:               "oud intense",
		Price:              dec("40.00"),
		DiscountPercentage: 10,
	}
	stub := &stubQueries{productRow: &row}
	svc := &Service{Q: stub}
	product, err := svc.Product(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !product.DiscountedPrice.Equal(dec("36.00")) {
		t.Fatalf("expected discounted price 36.00, got %s", product.DiscountedPrice)
	}
}

func TestProductNotFound(t *testing.T) {
	svc := &Service{Q: &stubQueries{}}
	_, err := svc.Product(context.Background(), newID())
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestProductServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	row := dbgen.GetProductWithDiscountRow{ID: newID(), Name: "vetiver", Price: dec("20.00")}
	stub := &stubQueries{productRow: &row}
	svc := &Service{Q: stub, Cache: NewCache(client, time.Minute)}

	if _, err := svc.Product(context.Background(), row.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Product(context.Background(), row.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.productCalls != 1 {
		t.Fatalf("expected one database read, got %d", stub.productCalls)
	}
}

func TestProductsJoinDiscountIndex(t *testing.T) {
	discounted := dbgen.Product{ID: newID(), Name: "amber", Price: dec("40.00")}
	plain := dbgen.Product{ID: newID(), Name: "musk", Price: dec("25.00")}
	stub := &stubQueries{
		products:  []dbgen.Product{discounted, plain},
		discounts: []dbgen.Discount{{ProductID: discounted.ID, Percentage: 10}},
	}
	svc := &Service{Q: stub}
	products, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products[0].DiscountPercentage != 10 || !products[0].DiscountedPrice.Equal(dec("36.00")) {
		t.Fatalf("expected discount applied to first product, got %+v", products[0])
	}
	if products[1].DiscountPercentage != 0 || !products[1].DiscountedPrice.Equal(dec("25.00")) {
		t.Fatalf("expected no discount on second product, got %+v", products[1])
	}
}

func TestProductsByCategoryUnknownCategory(t *testing.T) {
	svc := &Service{Q: &stubQueries{}}
	_, err := svc.ProductsByCategory(context.Background(), newID())
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := &Service{Q: &stubQueries{}}
	_, err := svc.Search(context.Background(), "   ")
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}
