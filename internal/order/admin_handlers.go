package order

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// AdminHandler provides administrative order management endpoints.
type AdminHandler struct {
	Svc *Service
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

// PatchStatus updates the order status.
func (h *AdminHandler) PatchStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	detail, err := h.Svc.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, detail)
}

// Filter lists orders by optional status and creation date range.
func (h *AdminHandler) Filter(w http.ResponseWriter, r *http.Request) {
	page, size := common.ParsePageSize(r, 20)
	params := FilterParams{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Size:   size,
	}
	var err error
	if params.From, err = parseDate(r.URL.Query().Get("from")); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	if params.To, err = parseDate(r.URL.Query().Get("to")); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid to date")
		return
	}
	result, err := h.Svc.Filter(r.Context(), params)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

// UserHistory returns all orders of one user.
func (h *AdminHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := common.ToUUID(chi.URLParam(r, "userId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	orders, err := h.Svc.History(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, orders)
}

func parseDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		d, derr := time.Parse("2006-01-02", trimmed)
		if derr != nil {
			return nil, err
		}
		t = d
	}
	return &t, nil
}
