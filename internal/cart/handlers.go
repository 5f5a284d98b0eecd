package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// Handler wires the cart service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type addRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"gte=1"`
}

type updateRequest struct {
	Quantity int32 `json:"quantity"`
}

type listResponse struct {
	Items  []Item          `json:"items"`
	Amount decimal.Decimal `json:"amount"`
}

// Add puts a product in the caller's cart.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := common.ToUUID(req.ProductID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	item, err := h.Svc.Add(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"id":        common.UUIDString(item.ID),
		"productId": common.UUIDString(item.ProductID),
		"quantity":  item.Quantity,
	})
}

// Update sets the quantity of a cart row. Zero removes it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	itemID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	item, removed, err := h.Svc.UpdateQuantity(r.Context(), userID, itemID, req.Quantity)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if removed {
		common.JSON(w, http.StatusOK, "cart item removed")
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"id":        common.UUIDString(item.ID),
		"productId": common.UUIDString(item.ProductID),
		"quantity":  item.Quantity,
	})
}

// Remove deletes a cart row.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	itemID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}
	if err := h.Svc.Remove(r.Context(), userID, itemID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "cart item removed")
}

// List returns the caller's cart with line pricing and the aggregate amount.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	items, amount, err := h.Svc.List(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, listResponse{Items: items, Amount: amount})
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
