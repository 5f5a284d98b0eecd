package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// Handler exposes the checkout OTP endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type sendRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type verifyRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Otp         string `json:"otp" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	Area        string `json:"area"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
}

func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "phone number is required")
		return
	}
	if err := h.Svc.SendOTP(r.Context(), req.PhoneNumber); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "Sms Send Successfully")
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "phone number, otp and name are required")
		return
	}
	result, err := h.Svc.Verify(r.Context(), VerifyInput{
		PhoneNumber: req.PhoneNumber,
		Otp:         req.Otp,
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Area:        req.Area,
		City:        req.City,
		PostalCode:  req.PostalCode,
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}
