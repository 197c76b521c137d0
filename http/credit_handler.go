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

type CreditHandler struct {
	service *service.CreditService
	logger  *zap.Logger
}

func NewCreditHandler(service *service.CreditService, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{service: service, logger: logger}
}

type scheduleRequest struct {
	Amount     float64 `json:"amount"`
	AnnualRate float64 `json:"annual_rate"`
	TermMonths int     `json:"term_months"`
	StartDate  string  `json:"start_date"` // dd.mm.yyyy
}

type scheduleResponse struct {
	Schedule report.ScheduleReport `json:"schedule"`
}

// Schedule computes an amortization schedule directly, without a form
// session.
func (h *CreditHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	start, err := validation.ParseDate(req.StartDate)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Msg, Kind: string(verr.Kind)})
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	rows, err := h.service.Amortize(domain.CreditPlan{
		Amount:     req.Amount,
		AnnualRate: req.AnnualRate,
		TermMonths: req.TermMonths,
		StartDate:  start,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{Schedule: report.BuildScheduleReport(rows)})
}
