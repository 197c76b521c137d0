package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finbot/domain"
	"finbot/report"
	"finbot/service"
	"finbot/validation"
)

type FormHandler struct {
	forms        *service.FormService
	premium      *service.EntitlementService
	membership   MembershipChecker
	premiumForms map[domain.FormKind]bool
	logger       *zap.Logger
}

func NewFormHandler(
	forms *service.FormService,
	premium *service.EntitlementService,
	membership MembershipChecker,
	premiumForms []string,
	logger *zap.Logger,
) *FormHandler {
	gated := make(map[domain.FormKind]bool, len(premiumForms))
	for _, kind := range premiumForms {
		gated[domain.FormKind(kind)] = true
	}
	return &FormHandler{
		forms:        forms,
		premium:      premium,
		membership:   membership,
		premiumForms: gated,
		logger:       logger,
	}
}

type startFormRequest struct {
	UserID  string `json:"user_id"`
	Form    string `json:"form"`
	Restart bool   `json:"restart"`
}

type promptResponse struct {
	Prompt string `json:"prompt"`
}

type fieldPayload struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type completionResponse struct {
	Completed bool                   `json:"completed"`
	Form      string                 `json:"form"`
	Fields    []fieldPayload         `json:"fields"`
	Profile   *domain.UserProfile    `json:"profile,omitempty"`
	Schedule  *report.ScheduleReport `json:"schedule,omitempty"`
	Deposit   *report.DepositReport  `json:"deposit,omitempty"`
}

func (h *FormHandler) StartForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req startFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.admit(w, r, req.UserID) {
		return
	}

	kind := domain.FormKind(req.Form)
	if h.premiumForms[kind] {
		active, err := h.premium.IsActive(r.Context(), req.UserID)
		if err != nil {
			h.logger.Error("entitlement check failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "entitlement check failed")
			return
		}
		if !active {
			writeError(w, http.StatusForbidden, "premium access required for this form")
			return
		}
	}

	prompt, err := h.forms.Start(r.Context(), req.UserID, kind, req.Restart)
	switch {
	case errors.Is(err, service.ErrUnknownForm):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, service.ErrFormInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error: err.Error(),
			Kind:  "form_in_progress",
		})
		return
	case err != nil:
		h.logger.Error("failed to start form", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start form")
		return
	}

	writeJSON(w, http.StatusOK, promptResponse{Prompt: prompt})
}

type submitRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (h *FormHandler) SubmitInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.admit(w, r, req.UserID) {
		return
	}

	reply, err := h.forms.Submit(r.Context(), req.UserID, req.Text)

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		// Recoverable: the step did not advance, re-ask with the same prompt.
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  verr.Msg,
			Kind:   string(verr.Kind),
			Prompt: reply.Prompt,
		})
		return
	case errors.Is(err, service.ErrNoSession):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to process input", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process input")
		return
	}

	if reply.Done == nil {
		writeJSON(w, http.StatusOK, promptResponse{Prompt: reply.Prompt})
		return
	}

	writeJSON(w, http.StatusOK, buildCompletion(reply.Done))
}

type cancelRequest struct {
	UserID string `json:"user_id"`
}

func (h *FormHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.forms.Cancel(r.Context(), req.UserID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// admit applies the membership gate shared by start and submit.
func (h *FormHandler) admit(w http.ResponseWriter, r *http.Request, userID string) bool {
	eligible, err := h.membership.IsEligible(r.Context(), userID)
	if err != nil {
		h.logger.Error("membership check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "membership check failed")
		return false
	}
	if !eligible {
		writeError(w, http.StatusForbidden, "join the required channels first")
		return false
	}
	return true
}

func buildCompletion(done *service.Completion) completionResponse {
	resp := completionResponse{
		Completed: true,
		Form:      string(done.Kind),
		Fields:    make([]fieldPayload, 0, len(done.Fields)),
	}
	for _, f := range done.Fields {
		resp.Fields = append(resp.Fields, fieldPayload{Name: f.Name, Value: f.Value})
	}

	if done.Profile != nil {
		resp.Profile = done.Profile
	}
	if done.Credit != nil {
		rep := report.BuildScheduleReport(done.Credit.Schedule)
		resp.Schedule = &rep
	}
	if done.Deposit != nil {
		rep := report.BuildDepositReport(done.Deposit.Bank, done.Deposit.Projection)
		resp.Deposit = &rep
	}
	return resp
}
