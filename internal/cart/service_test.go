package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

type stubQueries struct {
	dbgen.Querier

	product  *dbgen.Product
	existing *dbgen.CartItem
	rows     []dbgen.ListCartItemsByUserRow

	created       *dbgen.CreateCartItemParams
	updated       *dbgen.UpdateCartItemQuantityParams
	deletedRows   int64
	deleteCalled  bool
	deletedItemID pgtype.UUID
}

func (s *stubQueries) GetProductByID(ctx context.Context, id pgtype.UUID) (dbgen.Product, error) {
	if s.product == nil {
		return dbgen.Product{}, pgx.ErrNoRows
	}
	return *s.product, nil
}

func (s *stubQueries) FindCartItemByUserProduct(ctx context.Context, arg dbgen.FindCartItemByUserProductParams) (dbgen.CartItem, error) {
	if s.existing == nil {
		return dbgen.CartItem{}, pgx.ErrNoRows
	}
	return *s.existing, nil
}

func (s *stubQueries) GetCartItemByID(ctx context.Context, id pgtype.UUID) (dbgen.CartItem, error) {
	if s.existing == nil {
		return dbgen.CartItem{}, pgx.ErrNoRows
	}
	return *s.existing, nil
}

func (s *stubQueries) CreateCartItem(ctx context.Context, arg dbgen.CreateCartItemParams) (dbgen.CartItem, error) {
	s.created = &arg
	return dbgen.CartItem{ID: newID(), UserID: arg.UserID, ProductID: arg.ProductID, Quantity: arg.Quantity}, nil
}

func (s *stubQueries) UpdateCartItemQuantity(ctx context.Context, arg dbgen.UpdateCartItemQuantityParams) (dbgen.CartItem, error) {
	s.updated = &arg
	return dbgen.CartItem{ID: arg.ID, Quantity: arg.Quantity}, nil
}

func (s *stubQueries) DeleteCartItem(ctx context.Context, arg dbgen.DeleteCartItemParams) (int64, error) {
	s.deleteCalled = true
	s.deletedItemID = arg.ID
	return s.deletedRows, nil
}

func (s *stubQueries) ListCartItemsByUser(ctx context.Context, userID pgtype.UUID) ([]dbgen.ListCartItemsByUserRow, error) {
	return s.rows, nil
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func TestAddCreatesRowForNewProduct(t *testing.T) {
	stub := &stubQueries{product: &dbgen.Product{ID: newID()}}
	svc := &Service{Q: stub}
	item, err := svc.Add(context.Background(), newID(), stub.product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.created == nil {
		t.Fatal("expected a cart row to be created")
	}
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
}

func TestAddMergesQuantityForExistingProduct(t *testing.T) {
	existing := dbgen.CartItem{ID: newID(), Quantity: 3}
	stub := &stubQueries{product: &dbgen.Product{ID: newID()}, existing: &existing}
	svc := &Service{Q: stub}
	item, err := svc.Add(context.Background(), newID(), stub.product.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.created != nil {
		t.Fatal("must not create a second row for the same product")
	}
	if item.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", item.Quantity)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	stub := &stubQueries{}
	svc := &Service{Q: stub}
	_, err := svc.Add(context.Background(), newID(), newID(), 1)
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateQuantityZeroRemovesRow(t *testing.T) {
	user := newID()
	existing := dbgen.CartItem{ID: newID(), UserID: user, Quantity: 3}
	stub := &stubQueries{existing: &existing, deletedRows: 1}
	svc := &Service{Q: stub}
	_, removed, err := svc.UpdateQuantity(context.Background(), user, existing.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed || !stub.deleteCalled {
		t.Fatal("expected the row to be removed")
	}
}

func TestUpdateQuantityForeignRowHidden(t *testing.T) {
	existing := dbgen.CartItem{ID: newID(), UserID: newID(), Quantity: 3}
	stub := &stubQueries{existing: &existing}
	svc := &Service{Q: stub}
	_, _, err := svc.UpdateQuantity(context.Background(), newID(), existing.ID, 5)
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND for another user's row, got %v", err)
	}
}

func TestListComputesLineTotals(t *testing.T) {
	stub := &stubQueries{rows: []dbgen.ListCartItemsByUserRow{
		{ID: newID(), ProductName: "eau de parfum", Quantity: 2, UnitPrice: dec("25.00")},
		{ID: newID(), ProductName: "attar", Quantity: 1, UnitPrice: dec("40.00"), DiscountPercentage: 10},
	}}
	svc := &Service{Q: stub}
	items, amount, err := svc.List(context.Background(), newID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[1].LineTotal.Equal(dec("36.00")) {
		t.Fatalf("expected discounted line 36.00, got %s", items[1].LineTotal)
	}
	if !amount.Equal(dec("86.00")) {
		t.Fatalf("expected total 86.00, got %s", amount)
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
