package otp

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// Handler exposes the registration OTP endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type sendRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	SenderType  string `json:"senderType"`
	SmsType     string `json:"smsType" validate:"required"`
}

type verifyRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Otp         string `json:"otp" validate:"required"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "phone number and sms type are required")
		return
	}
	if req.SenderType == "" {
		req.SenderType = string(SenderSMS)
	}
	purpose, err := ParsePurpose(req.SmsType)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.Svc.Send(r.Context(), req.PhoneNumber, req.SenderType, purpose); err != nil {
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
		common.JSONError(w, http.StatusBadRequest, "phone number and otp are required")
		return
	}
	if err := h.Svc.VerifyRegistration(r.Context(), req.PhoneNumber, req.Otp); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "User verification successful")
}
