package http

import (
	"net/http"

	"go.uber.org/zap"

	"finbot/domain"
	"finbot/report"
	"finbot/repository"
)

type ProfileHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewProfileHandler(users repository.UserRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, logger: logger}
}

type creditPlanPayload struct {
	Amount     string  `json:"amount"`
	AnnualRate float64 `json:"annual_rate"`
	TermMonths int     `json:"term_months"`
	StartDate  string  `json:"start_date"`
}

type profileResponse struct {
	UserID  string              `json:"user_id"`
	Profile *domain.UserProfile `json:"profile,omitempty"`
	Credit  *creditPlanPayload  `json:"credit,omitempty"`
}

// Show returns the persisted record: profile answers plus the latest
// completed credit plan, if any.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	rec, err := h.users.Load(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load user record", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load user record")
		return
	}
	if rec == nil || (rec.Profile == nil && rec.Credit == nil) {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}

	resp := profileResponse{UserID: userID, Profile: rec.Profile}
	if rec.Credit != nil {
		resp.Credit = &creditPlanPayload{
			Amount:     report.FormatAmount(rec.Credit.Amount),
			AnnualRate: rec.Credit.AnnualRate,
			TermMonths: rec.Credit.TermMonths,
			StartDate:  report.FormatDate(rec.Credit.StartDate),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
