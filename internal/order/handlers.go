package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// Handler exposes order placement and history to authenticated users.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type placeItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"gte=1"`
}

type placeRequest struct {
	// TotalPrice is accepted for wire compatibility and ignored; the
	// server recomputes the chargeable amount.
	TotalPrice           *decimal.Decimal   `json:"totalPrice"`
	OrderItemRequestList []placeItemRequest `json:"orderItemRequestList" validate:"required,min=1,dive"`
	CouponCode           string             `json:"couponCode"`
}

// Place creates an order for the caller.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := make([]ItemRequest, 0, len(req.OrderItemRequestList))
	for _, item := range req.OrderItemRequestList {
		productID, err := common.ToUUID(item.ProductID)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "invalid product id")
			return
		}
		items = append(items, ItemRequest{ProductID: productID, Quantity: item.Quantity})
	}
	detail, err := h.Svc.Place(r.Context(), userID, PlaceRequest{Items: items, CouponCode: req.CouponCode})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, detail)
}

// History returns the caller's orders.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orders, err := h.Svc.History(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, orders)
}

// Get returns one of the caller's orders with its items.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orderID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	detail, err := h.Svc.Get(r.Context(), orderID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if detail.UserID != common.UUIDString(userID) {
		common.WriteError(w, common.NotFound("order not found"))
		return
	}
	common.JSON(w, http.StatusOK, detail)
}

func currentUser(r *http.Request) (pgtype.UUID, bool) {
	raw, ok := common.UserID(r.Context())
	if !ok {
		return pgtype.UUID{}, false
	}
	id, err := common.ToUUID(raw)
	if err != nil {
		return pgtype.UUID{}, false
	}
	return id, true
}
