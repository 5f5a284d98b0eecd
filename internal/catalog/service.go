package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/pricing"
)

// Product is the public catalog payload. DiscountedPrice reflects the
// current product-level discount, if any.
type Product struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage int32           `json:"discountPercentage"`
	DiscountedPrice    decimal.Decimal `json:"discountedPrice"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	CategoryID         string          `json:"categoryId,omitempty"`
}

// Category is the public category payload.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Service orchestrates catalog queries, DTO assembly, and caching.
type Service struct {
	Q     dbgen.Querier
	Cache *Cache
}

const (
	productListKey = "catalog:products"
	productKeyFmt  = "catalog:product:%s"
)

// Product resolves one product together with its discount pricing.
// Reads go through the cache when one is configured.
func (s *Service) Product(ctx context.Context, id pgtype.UUID) (Product, error) {
	if s == nil || s.Q == nil {
		return Product{}, errors.New("catalog service not configured")
	}
	key := fmt.Sprintf(productKeyFmt, common.UUIDString(id))
	var cached Product
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	row, err := s.Q.GetProductWithDiscount(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, common.NotFound("product not found")
		}
		return Product{}, common.Internal(err)
	}
	product := productFromDiscountRow(row)
	_ = s.Cache.SetJSON(ctx, key, product)
	return product, nil
}

// Products lists the whole catalog with discount pricing applied.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("catalog service not configured")
	}
	var cached []Product
	if ok, err := s.Cache.GetJSON(ctx, productListKey, &cached); err == nil && ok {
		return cached, nil
	}
	rows, err := s.Q.ListProducts(ctx)
	if err != nil {
		return nil, common.Internal(err)
	}
	out, err := s.withDiscounts(ctx, rows)
	if err != nil {
		return nil, err
	}
	_ = s.Cache.SetJSON(ctx, productListKey, out)
	return out, nil
}

// ProductsByCategory lists products belonging to one category.
func (s *Service) ProductsByCategory(ctx context.Context, categoryID pgtype.UUID) ([]Product, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("catalog service not configured")
	}
	if _, err := s.Q.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFound("category not found")
		}
		return nil, common.Internal(err)
	}
	rows, err := s.Q.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, common.Internal(err)
	}
	return s.withDiscounts(ctx, rows)
}

// Search matches products by name, case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("catalog service not configured")
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, common.InvalidRequest("search query is required")
	}
	rows, err := s.Q.SearchProducts(ctx, "%"+trimmed+"%")
	if err != nil {
		return nil, common.Internal(err)
	}
	return s.withDiscounts(ctx, rows)
}

// InvalidateProduct drops cached entries after a mutation.
func (s *Service) InvalidateProduct(ctx context.Context, id pgtype.UUID) {
	if s == nil {
		return
	}
	s.Cache.Invalidate(ctx, productListKey, fmt.Sprintf(productKeyFmt, common.UUIDString(id)))
}

func (s *Service) withDiscounts(ctx context.Context, rows []dbgen.Product) ([]Product, error) {
	discounts, err := s.discountIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		pct := discounts[row.ID.Bytes]
		out = append(out, productFromModel(row, pct))
	}
	return out, nil
}

func (s *Service) discountIndex(ctx context.Context) (map[[16]byte]int32, error) {
	rows, err := s.Q.ListDiscounts(ctx)
	if err != nil {
		return nil, common.Internal(err)
	}
	index := make(map[[16]byte]int32, len(rows))
	for _, d := range rows {
		if d.ProductID.Valid {
			index[d.ProductID.Bytes] = d.Percentage
		}
	}
	return index, nil
}

func productFromModel(row dbgen.Product, pct int32) Product {
	discounted := row.Price.Sub(pricing.PercentageAmount(row.Price, pct))
	return Product{
		ID:                 common.UUIDString(row.ID),
		Name:               row.Name,
		Description:        row.Description.String,
		Price:              row.Price,
		DiscountPercentage: pct,
		DiscountedPrice:    discounted,
		ImageURL:           row.ImageUrl.String,
		CategoryID:         common.UUIDString(row.CategoryID),
	}
}

func productFromDiscountRow(row dbgen.GetProductWithDiscountRow) Product {
	discounted := row.Price.Sub(pricing.PercentageAmount(row.Price, row.DiscountPercentage))
	return Product{
		ID:                 common.UUIDString(row.ID),
		Name:               row.Name,
		Description:        row.Description.String,
		Price:              row.Price,
		DiscountPercentage: row.DiscountPercentage,
		DiscountedPrice:    discounted,
		ImageURL:           row.ImageUrl.String,
		CategoryID:         common.UUIDString(row.CategoryID),
	}
}

func categoryFromModel(row dbgen.Category) Category {
	return Category{
		ID:          common.UUIDString(row.ID),
		Name:        row.Name,
		Description: row.Description.String,
	}
}
