package order

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

// ItemRequest is one requested order line.
type ItemRequest struct {
	ProductID pgtype.UUID
	Quantity  int32
}

// PlaceRequest carries the inputs for order placement. TotalPrice sent
// by clients is ignored; the server recomputes the chargeable amount.
type PlaceRequest struct {
	Items      []ItemRequest
	CouponCode string
}

// Line is an order item with its resolved price.
type Line struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Detail is the full order payload.
type Detail struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	Items      []Line          `json:"items,omitempty"`
}

// FilterParams narrows the admin order listing.
type FilterParams struct {
	Status string
	From   *time.Time
	To     *time.Time
	Page   int
	Size   int
}

// FilterResult couples a page of orders with pagination metadata.
type FilterResult struct {
	Orders []Detail           `json:"orders"`
	Paging common.PagedResult `json:"paging"`
}

// Service orchestrates order placement and management.
type Service struct {
	Q    *dbgen.Queries
	Pool *pgxpool.Pool
}

// Place creates an order from the requested lines in a single
// transaction: item pricing, delivery cost, coupon discount, order and
// item inserts, and cart cleanup all commit or roll back together.
func (s *Service) Place(ctx context.Context, userID pgtype.UUID, req PlaceRequest) (Detail, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return Detail{}, errors.New("order service not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Detail{}, common.Internal(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	detail, err := s.place(ctx, s.Q.WithTx(tx), userID, req)
	if err != nil {
		return Detail{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Detail{}, common.Internal(err)
	}
	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.Inc()
	}
	return detail, nil
}

func (s *Service) place(ctx context.Context, q dbgen.Querier, userID pgtype.UUID, req PlaceRequest) (Detail, error) {
	if len(req.Items) == 0 {
		return Detail{}, common.InvalidRequest("order items are required")
	}
	if _, err := q.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, common.NotFound("user not found")
		}
		return Detail{}, common.Internal(err)
	}

	itemsTotal := decimal.Zero
	lines := make([]Line, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return Detail{}, common.InvalidRequest("quantity must be positive")
		}
		product, err := q.GetProductWithDiscount(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Detail{}, common.NotFound("product not found")
			}
			return Detail{}, common.Internal(err)
		}
		linePrice := pricing.LineItemPrice(pricing.Line{
			Quantity:        item.Quantity,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercentage,
		})
		itemsTotal = itemsTotal.Add(linePrice)
		lines = append(lines, Line{
			ProductID:   common.UUIDString(product.ID),
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       linePrice,
		})
	}

	deliveryCost, err := s.deliveryCost(ctx, q, userID)
	if err != nil {
		return Detail{}, err
	}
	total := itemsTotal.Add(deliveryCost)

	if code := strings.TrimSpace(req.CouponCode); code != "" {
		discount, err := s.couponDiscount(ctx, q, userID, code)
		if err != nil {
			return Detail{}, err
		}
		total = total.Sub(discount)
	}

	created, err := q.CreateOrder(ctx, dbgen.CreateOrderParams{
		UserID:     userID,
		TotalPrice: total,
		Status:     dbgen.OrderStatusPENDING,
	})
	if err != nil {
		return Detail{}, common.Internal(err)
	}
	for i, item := range req.Items {
		if _, err := q.CreateOrderItem(ctx, dbgen.CreateOrderItemParams{
			OrderID:   created.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     lines[i].Price,
		}); err != nil {
			return Detail{}, common.Internal(err)
		}
		if err := q.DeleteCartItemByUserProduct(ctx, dbgen.DeleteCartItemByUserProductParams{
			UserID:    userID,
			ProductID: item.ProductID,
		}); err != nil {
			return Detail{}, common.Internal(err)
		}
	}
	detail := detailFromModel(created)
	detail.Items = lines
	return detail, nil
}

func (s *Service) deliveryCost(ctx context.Context, q dbgen.Querier, userID pgtype.UUID) (decimal.Decimal, error) {
	address, err := q.GetAddressByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, common.NotFound("invalid delivery location")
		}
		return decimal.Zero, common.Internal(err)
	}
	city := strings.TrimSpace(address.City.String)
	if city == "" {
		return decimal.Zero, common.NotFound("invalid delivery location")
	}
	cost, err := q.GetDeliveryCostByLocation(ctx, city)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, common.NotFound("invalid delivery location")
		}
		return decimal.Zero, common.Internal(err)
	}
	return cost.Cost, nil
}

// couponDiscount reads the discount reserved by a prior coupon
// application. An unknown code or a missing ledger row contributes
// nothing to the total.
func (s *Service) couponDiscount(ctx context.Context, q dbgen.Querier, userID pgtype.UUID, code string) (decimal.Decimal, error) {
	c, err := q.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, common.Internal(err)
	}
	usage, err := q.GetCouponUsageByCouponAndUser(ctx, dbgen.GetCouponUsageByCouponAndUserParams{CouponID: c.ID, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, common.Internal(err)
	}
	return usage.DiscountedAmount, nil
}

// ParseStatus maps a free-form status string onto the closed order
// status set, case-insensitively.
func ParseStatus(value string) (dbgen.OrderStatus, bool) {
	switch dbgen.OrderStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case dbgen.OrderStatusPENDING:
		return dbgen.OrderStatusPENDING, true
	case dbgen.OrderStatusCONFIRMED:
		return dbgen.OrderStatusCONFIRMED, true
	case dbgen.OrderStatusSHIPPED:
		return dbgen.OrderStatusSHIPPED, true
	case dbgen.OrderStatusDELIVERED:
		return dbgen.OrderStatusDELIVERED, true
	case dbgen.OrderStatusCANCELLED:
		return dbgen.OrderStatusCANCELLED, true
	case dbgen.OrderStatusRETURNED:
		return dbgen.OrderStatusRETURNED, true
	default:
		return "", false
	}
}

// UpdateStatus sets the order status after validating the target value.
func (s *Service) UpdateStatus(ctx context.Context, orderID pgtype.UUID, status string) (Detail, error) {
	if s == nil || s.Q == nil {
		return Detail{}, errors.New("order service not configured")
	}
	return s.updateStatus(ctx, s.Q, orderID, status)
}

func (s *Service) updateStatus(ctx context.Context, q dbgen.Querier, orderID pgtype.UUID, status string) (Detail, error) {
	target, ok := ParseStatus(status)
	if !ok {
		return Detail{}, common.InvalidRequest("invalid order status")
	}
	updated, err := q.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{ID: orderID, Status: target})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, common.NotFound("order not found")
		}
		return Detail{}, common.Internal(err)
	}
	return detailFromModel(updated), nil
}

// Filter lists orders matching the optional status and date range.
func (s *Service) Filter(ctx context.Context, params FilterParams) (FilterResult, error) {
	if s == nil || s.Q == nil {
		return FilterResult{}, errors.New("order service not configured")
	}
	return s.filter(ctx, s.Q, params)
}

func (s *Service) filter(ctx context.Context, q dbgen.Querier, params FilterParams) (FilterResult, error) {
	var status dbgen.NullOrderStatus
	if strings.TrimSpace(params.Status) != "" {
		parsed, ok := ParseStatus(params.Status)
		if !ok {
			return FilterResult{}, common.InvalidRequest("invalid order status")
		}
		status = dbgen.NullOrderStatus{OrderStatus: parsed, Valid: true}
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	if params.Page < 0 {
		params.Page = 0
	}
	from := timeToNullable(params.From)
	to := timeToNullable(params.To)

	total, err := q.CountFilteredOrders(ctx, dbgen.CountFilteredOrdersParams{Status: status, From: from, To: to})
	if err != nil {
		return FilterResult{}, common.Internal(err)
	}
	rows, err := q.FilterOrders(ctx, dbgen.FilterOrdersParams{
		Status: status,
		From:   from,
		To:     to,
		Limit:  int32(params.Size),
		Offset: int32(params.Page * params.Size),
	})
	if err != nil {
		return FilterResult{}, common.Internal(err)
	}
	if len(rows) == 0 {
		return FilterResult{}, common.NotFound("no orders found")
	}
	orders := make([]Detail, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, detailFromModel(row))
	}
	return FilterResult{
		Orders: orders,
		Paging: common.PagedResult{
			TotalPage:     common.TotalPages(total, params.Size),
			TotalElements: total,
		},
	}, nil
}

// History returns all orders placed by a user, newest first.
func (s *Service) History(ctx context.Context, userID pgtype.UUID) ([]Detail, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("order service not configured")
	}
	return s.history(ctx, s.Q, userID)
}

func (s *Service) history(ctx context.Context, q dbgen.Querier, userID pgtype.UUID) ([]Detail, error) {
	if _, err := q.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFound("user not found")
		}
		return nil, common.Internal(err)
	}
	rows, err := q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, common.Internal(err)
	}
	orders := make([]Detail, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, detailFromModel(row))
	}
	return orders, nil
}

// Get returns one order with its items.
func (s *Service) Get(ctx context.Context, orderID pgtype.UUID) (Detail, error) {
	if s == nil || s.Q == nil {
		return Detail{}, errors.New("order service not configured")
	}
	return s.get(ctx, s.Q, orderID)
}

func (s *Service) get(ctx context.Context, q dbgen.Querier, orderID pgtype.UUID) (Detail, error) {
	row, err := q.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Detail{}, common.NotFound("order not found")
		}
		return Detail{}, common.Internal(err)
	}
	items, err := q.ListOrderItemsByOrder(ctx, orderID)
	if err != nil {
		return Detail{}, common.Internal(err)
	}
	detail := detailFromModel(row)
	for _, item := range items {
		detail.Items = append(detail.Items, Line{
			ProductID:   common.UUIDString(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return detail, nil
}

func detailFromModel(row dbgen.Order) Detail {
	return Detail{
		ID:         common.UUIDString(row.ID),
		UserID:     common.UUIDString(row.UserID),
		TotalPrice: row.TotalPrice,
		Status:     string(row.Status),
		CreatedAt:  row.CreatedAt.Time,
	}
}

func timeToNullable(v *time.Time) pgtype.Timestamptz {
	if v == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *v, Valid: true}
}
