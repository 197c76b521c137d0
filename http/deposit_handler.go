package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"finbot/report"
	"finbot/service"
)

type DepositHandler struct {
	service *service.DepositService
	logger  *zap.Logger
}

func NewDepositHandler(service *service.DepositService, logger *zap.Logger) *DepositHandler {
	return &DepositHandler{service: service, logger: logger}
}

type depositRequest struct {
	Amount         float64 `json:"amount"`
	TermMonths     int     `json:"term_months"`
	BankID         string  `json:"bank_id"`
	Capitalization bool    `json:"capitalization"`
}

type depositResponse struct {
	Deposit report.DepositReport `json:"deposit"`
}

// Calculate projects a single deposit against one catalog bank.
func (h *DepositHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bank, ok := h.service.Bank(req.BankID)
	if !ok {
		writeError(w, http.StatusBadRequest, service.ErrUnknownBank.Error())
		return
	}

	proj, err := h.service.Project(req.Amount, bank.AnnualRate, req.TermMonths, req.Capitalization)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, depositResponse{Deposit: report.BuildDepositReport(bank, proj)})
}

type compareRequest struct {
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
}

type compareResponse struct {
	Comparison report.ComparisonReport `json:"comparison"`
}

// Compare projects a capitalized deposit across every eligible catalog
// bank, in catalog order.
func (h *DepositHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comparisons, err := h.service.Compare(req.Amount, req.TermMonths)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, compareResponse{Comparison: report.BuildComparisonReport(comparisons)})
}
