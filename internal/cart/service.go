package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/pricing"
)

// Item is the cart row enriched with product pricing.
type Item struct {
	ID                 string          `json:"id"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	Quantity           int32           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	DiscountPercentage int32           `json:"discountPercentage"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
}

// Service encapsulates cart domain operations. Rows are keyed by
// (user, product); adding an existing product adjusts its quantity.
type Service struct {
	Q dbgen.Querier
}

// Add puts a product in the user's cart. When the product is already
// present the quantity is added to the existing row.
func (s *Service) Add(ctx context.Context, userID, productID pgtype.UUID, quantity int32) (dbgen.CartItem, error) {
	if s == nil || s.Q == nil {
		return dbgen.CartItem{}, errors.New("cart service not configured")
	}
	if quantity <= 0 {
		return dbgen.CartItem{}, common.InvalidRequest("quantity must be positive")
	}
	if _, err := s.Q.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.CartItem{}, common.NotFound("product not found")
		}
		return dbgen.CartItem{}, common.Internal(err)
	}
	existing, err := s.Q.FindCartItemByUserProduct(ctx, dbgen.FindCartItemByUserProductParams{UserID: userID, ProductID: productID})
	if err == nil {
		updated, err := s.Q.UpdateCartItemQuantity(ctx, dbgen.UpdateCartItemQuantityParams{ID: existing.ID, Quantity: existing.Quantity + quantity})
		if err != nil {
			return dbgen.CartItem{}, common.Internal(err)
		}
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dbgen.CartItem{}, common.Internal(err)
	}
	created, err := s.Q.CreateCartItem(ctx, dbgen.CreateCartItemParams{UserID: userID, ProductID: productID, Quantity: quantity})
	if err != nil {
		return dbgen.CartItem{}, common.Internal(err)
	}
	return created, nil
}

// UpdateQuantity sets the quantity of a cart row owned by the user.
// A non-positive quantity removes the row.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID pgtype.UUID, quantity int32) (dbgen.CartItem, bool, error) {
	if s == nil || s.Q == nil {
		return dbgen.CartItem{}, false, errors.New("cart service not configured")
	}
	item, err := s.Q.GetCartItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.CartItem{}, false, common.NotFound("cart item not found")
		}
		return dbgen.CartItem{}, false, common.Internal(err)
	}
	if !common.UUIDEqual(item.UserID, userID) {
		return dbgen.CartItem{}, false, common.NotFound("cart item not found")
	}
	if quantity <= 0 {
		if _, err := s.Q.DeleteCartItem(ctx, dbgen.DeleteCartItemParams{ID: itemID, UserID: userID}); err != nil {
			return dbgen.CartItem{}, false, common.Internal(err)
		}
		return dbgen.CartItem{}, true, nil
	}
	updated, err := s.Q.UpdateCartItemQuantity(ctx, dbgen.UpdateCartItemQuantityParams{ID: itemID, Quantity: quantity})
	if err != nil {
		return dbgen.CartItem{}, false, common.Internal(err)
	}
	return updated, false, nil
}

// Remove deletes a cart row owned by the user.
func (s *Service) Remove(ctx context.Context, userID, itemID pgtype.UUID) error {
	if s == nil || s.Q == nil {
		return errors.New("cart service not configured")
	}
	deleted, err := s.Q.DeleteCartItem(ctx, dbgen.DeleteCartItemParams{ID: itemID, UserID: userID})
	if err != nil {
		return common.Internal(err)
	}
	if deleted == 0 {
		return common.NotFound("cart item not found")
	}
	return nil
}

// List returns the user's cart rows with per-line pricing and the
// aggregate amount.
func (s *Service) List(ctx context.Context, userID pgtype.UUID) ([]Item, decimal.Decimal, error) {
	if s == nil || s.Q == nil {
		return nil, decimal.Zero, errors.New("cart service not configured")
	}
	rows, err := s.Q.ListCartItemsByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, common.Internal(err)
	}
	items := make([]Item, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		line := pricing.LineItemPrice(pricing.Line{
			Quantity:        row.Quantity,
			UnitPrice:       row.UnitPrice,
			DiscountPercent: row.DiscountPercentage,
		})
		items = append(items, Item{
			ID:                 common.UUIDString(row.ID),
			ProductID:          common.UUIDString(row.ProductID),
			ProductName:        row.ProductName,
			Quantity:           row.Quantity,
			UnitPrice:          row.UnitPrice,
			DiscountPercentage: row.DiscountPercentage,
			LineTotal:          line,
		})
		total = total.Add(line)
	}
	return items, total, nil
}
