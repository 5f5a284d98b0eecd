package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

// Handler exposes delivery cost lookup and admin management.
type Handler struct {
	Q        dbgen.Querier
	Svc      *Service
	Validate *validator.Validate
}

type costPayload struct {
	Location string          `json:"location" validate:"required"`
	Service  string          `json:"service" validate:"required"`
	Cost     decimal.Decimal `json:"cost"`
}

type costResponse struct {
	ID       string          `json:"id"`
	Location string          `json:"location"`
	Service  string          `json:"service"`
	Cost     decimal.Decimal `json:"cost"`
}

// Lookup resolves the delivery cost for a city.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	row, err := h.Svc.ByLocation(r.Context(), location)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, toResponse(row))
}

// List returns all delivery cost rows.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.ListDeliveryCosts(r.Context())
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	out := make([]costResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResponse(row))
	}
	common.JSON(w, http.StatusOK, out)
}

// Get returns a single delivery cost row.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid delivery cost id")
		return
	}
	row, err := h.Svc.ByID(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, toResponse(row))
}

// Create adds a delivery cost row.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload costPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Cost.IsNegative() {
		common.JSONError(w, http.StatusBadRequest, "cost must not be negative")
		return
	}
	row, err := h.Q.CreateDeliveryCost(r.Context(), dbgen.CreateDeliveryCostParams{
		Location: strings.TrimSpace(payload.Location),
		Service:  strings.TrimSpace(payload.Service),
		Cost:     payload.Cost,
	})
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusCreated, toResponse(row))
}

// Update mutates a delivery cost row.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid delivery cost id")
		return
	}
	var payload costPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, err := h.Q.UpdateDeliveryCost(r.Context(), dbgen.UpdateDeliveryCostParams{
		ID:       id,
		Location: strings.TrimSpace(payload.Location),
		Service:  strings.TrimSpace(payload.Service),
		Cost:     payload.Cost,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("delivery cost not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusOK, toResponse(row))
}

// Delete removes a delivery cost row.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid delivery cost id")
		return
	}
	deleted, err := h.Q.DeleteDeliveryCost(r.Context(), id)
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	if deleted == 0 {
		common.WriteError(w, common.NotFound("delivery cost not found"))
		return
	}
	common.JSON(w, http.StatusOK, "delivery cost deleted")
}

func toResponse(row dbgen.DeliveryCost) costResponse {
	return costResponse{
		ID:       common.UUIDString(row.ID),
		Location: row.Location,
		Service:  row.Service,
		Cost:     row.Cost,
	}
}
