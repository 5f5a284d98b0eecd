package coupon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

// Handler exposes coupon management and redemption endpoints.
type Handler struct {
	Q        dbgen.Querier
	Svc      *Service
	Validate *validator.Validate
}

type couponPayload struct {
	Code             string          `json:"code" validate:"required"`
	CouponType       string          `json:"couponType" validate:"required"`
	Amount           decimal.Decimal `json:"amount"`
	MinOrderAmount   decimal.Decimal `json:"minOrderAmount"`
	MaxAmountApplied decimal.Decimal `json:"maxAmountApplied"`
	UsageLimit       int32           `json:"usageLimit" validate:"gte=1"`
	ExpirationTime   *time.Time      `json:"expirationTime"`
	Active           *bool           `json:"active"`
}

type applyRequest struct {
	CartInfoList []string `json:"cartInfoList" validate:"required,min=1"`
	CouponCode   string   `json:"couponCode" validate:"required"`
}

type couponResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	CouponType       string          `json:"couponType"`
	Amount           decimal.Decimal `json:"amount"`
	MinOrderAmount   decimal.Decimal `json:"minOrderAmount"`
	MaxAmountApplied decimal.Decimal `json:"maxAmountApplied"`
	UsageLimit       int32           `json:"usageLimit"`
	ExpirationTime   *time.Time      `json:"expirationTime"`
	Active           bool            `json:"active"`
}

// Create inserts a new coupon. Unknown coupon types are rejected here
// rather than silently ignored at redemption time.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload couponPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	params, err := buildCreateParams(payload)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.Q.CreateCoupon(r.Context(), params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, "coupon code already exists")
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusCreated, toResponse(c))
}

// Update mutates an existing coupon identified by id. The code itself
// is immutable.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	var payload couponPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	couponType, ok := ParseType(payload.CouponType)
	if !ok {
		common.WriteError(w, common.Unsupported("unsupported coupon type"))
		return
	}
	c, err := h.Q.UpdateCoupon(r.Context(), dbgen.UpdateCouponParams{
		ID:               id,
		CouponType:       couponType,
		Amount:           payload.Amount,
		MinOrderAmount:   payload.MinOrderAmount,
		MaxAmountApplied: payload.MaxAmountApplied,
		UsageLimit:       payload.UsageLimit,
		ExpirationTime:   timeToNullable(payload.ExpirationTime),
		Active:           payload.Active == nil || *payload.Active,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("coupon not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusOK, toResponse(c))
}

// Get returns a single coupon by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	c, err := h.Q.GetCouponByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			common.WriteError(w, common.NotFound("coupon not found"))
			return
		}
		common.WriteError(w, common.Internal(err))
		return
	}
	common.JSON(w, http.StatusOK, toResponse(c))
}

// List returns all coupons, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.Q.ListCoupons(r.Context())
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	out := make([]couponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, toResponse(c))
	}
	common.JSON(w, http.StatusOK, out)
}

// Delete removes a coupon and, via cascade, its usage ledger.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	deleted, err := h.Q.DeleteCoupon(r.Context(), id)
	if err != nil {
		common.WriteError(w, common.Internal(err))
		return
	}
	if deleted == 0 {
		common.WriteError(w, common.NotFound("coupon not found"))
		return
	}
	common.JSON(w, http.StatusOK, "coupon deleted")
}

// Stats returns aggregate redemption figures for a coupon.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := common.ToUUID(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}
	stats, err := h.Svc.UsageStats(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, stats)
}

// Apply validates and redeems a coupon against the caller's cart rows,
// returning the payable amount after the discount.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ids := make([]pgtype.UUID, 0, len(req.CartInfoList))
	for _, raw := range req.CartInfoList {
		id, err := common.ToUUID(raw)
		if err != nil {
			common.JSONError(w, http.StatusBadRequest, "invalid cart item id")
			return
		}
		ids = append(ids, id)
	}
	final, err := h.Svc.Apply(r.Context(), userID, ids, req.CouponCode)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, final)
}

// DeleteUsage removes the caller's ledger entry for a coupon code.
func (h *Handler) DeleteUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "code is required")
		return
	}
	if err := h.Svc.DeleteUsage(r.Context(), userID, code); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "coupon usage deleted")
}

func buildCreateParams(payload couponPayload) (dbgen.CreateCouponParams, error) {
	couponType, ok := ParseType(payload.CouponType)
	if !ok {
		return dbgen.CreateCouponParams{}, common.Unsupported("unsupported coupon type")
	}
	if payload.Amount.IsNegative() {
		return dbgen.CreateCouponParams{}, common.InvalidRequest("amount must not be negative")
	}
	return dbgen.CreateCouponParams{
		Code:             strings.TrimSpace(payload.Code),
		CouponType:       couponType,
		Amount:           payload.Amount,
		MinOrderAmount:   payload.MinOrderAmount,
		MaxAmountApplied: payload.MaxAmountApplied,
		UsageLimit:       payload.UsageLimit,
		ExpirationTime:   timeToNullable(payload.ExpirationTime),
		Active:           payload.Active == nil || *payload.Active,
	}, nil
}

func toResponse(c dbgen.Coupon) couponResponse {
	resp := couponResponse{
		ID:               common.UUIDString(c.ID),
		Code:             c.Code,
		CouponType:       string(c.CouponType),
		Amount:           c.Amount,
		MinOrderAmount:   c.MinOrderAmount,
		MaxAmountApplied: c.MaxAmountApplied,
		UsageLimit:       c.UsageLimit,
		Active:           c.Active,
	}
	if c.ExpirationTime.Valid {
		resp.ExpirationTime = &c.ExpirationTime.Time
	}
	return resp
}

func timeToNullable(v *time.Time) pgtype.Timestamptz {
	if v == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *v, Valid: true}
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
