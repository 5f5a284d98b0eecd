package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

// Handler exposes login and password endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type resetPasswordRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Otp         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "phone number and password are required")
		return
	}
	result, err := h.Svc.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, result)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "old and new passwords are required")
		return
	}
	if err := h.Svc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "password updated")
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "phone number, otp and new password are required")
		return
	}
	if err := h.Svc.ResetPassword(r.Context(), req.PhoneNumber, req.Otp, req.NewPassword); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, "password reset")
}
