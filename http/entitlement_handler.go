package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"finbot/service"
)

type EntitlementHandler struct {
	service *service.EntitlementService
	logger  *zap.Logger
}

func NewEntitlementHandler(service *service.EntitlementService, logger *zap.Logger) *EntitlementHandler {
	return &EntitlementHandler{service: service, logger: logger}
}

type grantRequest struct {
	UserID string `json:"user_id"`
	Days   int    `json:"days"`
}

type grantResponse struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *EntitlementHandler) Grant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Days == 0 {
		req.Days = service.DefaultEntitlementDays
	}

	ent, err := h.service.Grant(r.Context(), req.UserID, req.Days)
	if errors.Is(err, service.ErrInvalidDuration) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to grant entitlement", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to grant entitlement")
		return
	}

	writeJSON(w, http.StatusOK, grantResponse{UserID: ent.UserID, ExpiresAt: ent.ExpiresAt})
}

type statusResponse struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

func (h *EntitlementHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	active, err := h.service.IsActive(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to check entitlement", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to check entitlement")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{UserID: userID, Active: active})
}
