package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"jewel-studio-api/common"
	"jewel-studio-api/logger"
	"jewel-studio-api/model"
	"jewel-studio-api/service"
)

// apiResponse is the JSON envelope shared by auth and admin endpoints.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Signup provisions a new admin user. Requires the pre-shared secret code;
// returns no tokens, the caller logs in separately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if appErr := common.DecodeAndValidate(r, &req, "All fields are required"); appErr != nil {
		return appErr
	}

	if err := h.service.Signup(req.Email, req.Password, req.SecretCode); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
		case errors.Is(err, service.ErrIncorrectSecret):
			return common.NewAppError(http.StatusUnauthorized, "Incorrect secret code", nil)
		case errors.Is(err, service.ErrEmailTaken):
			return common.NewAppError(http.StatusConflict, "User already exists with this email", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Signup successful",
	})
	return nil
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if appErr := common.DecodeAndValidate(r, &req, "All fields are required"); appErr != nil {
		return appErr
	}

	pair, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return common.NewAppError(http.StatusBadRequest, "All fields are required", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			return common.NewAppError(http.StatusUnauthorized, "Incorrect email or password", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	logger.Log.Info("Login successful")
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Login successful",
		Data:    pair,
	})
	return nil
}

// Refresh rotates a refresh token: verifies it, confirms it was issued by
// this system, and returns a brand-new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if appErr := common.DecodeAndValidate(r, &req, "Refresh token is required"); appErr != nil {
		return appErr
	}

	pair, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			return common.NewAppError(http.StatusBadRequest, "Refresh token is required", nil)
		case errors.Is(err, service.ErrInvalidRefreshToken):
			return common.NewAppError(http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
		}
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: "Access token refreshed successfully",
		Data:    pair,
	})
	return nil
}
