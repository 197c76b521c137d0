package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"finbot/domain"
	"finbot/repository"
)

type CreditService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewCreditService creates a new CreditService with the given repository.
func NewCreditService(users repository.UserRepository, logger *zap.Logger) *CreditService {
	return &CreditService{users: users, logger: logger}
}

// Amortize builds the full annuity payment schedule for a plan. The fixed
// payment is computed once; the final row folds any residual balance left
// by floating-point drift into its payment, so the balance terminates at
// exactly zero.
func (s *CreditService) Amortize(plan domain.CreditPlan) ([]domain.AmortizationRow, error) {
	if plan.Amount <= 0 || plan.Amount > MaxCreditAmount {
		return nil, ErrInvalidPrincipal
	}
	if plan.TermMonths < MinCreditTermMonths || plan.TermMonths > MaxCreditTermMonths {
		return nil, ErrInvalidTerm
	}
	if plan.AnnualRate < 0 || plan.AnnualRate > MaxCreditRate {
		return nil, ErrInvalidRate
	}

	monthlyRate := plan.AnnualRate / 100 / 12
	n := float64(plan.TermMonths)

	var payment float64
	if monthlyRate == 0 {
		payment = plan.Amount / n
	} else {
		payment = plan.Amount * (monthlyRate * math.Pow(1+monthlyRate, n)) /
			(math.Pow(1+monthlyRate, n) - 1)
	}

	rows := make([]domain.AmortizationRow, 0, plan.TermMonths)
	balance := plan.Amount

	for i := 1; i <= plan.TermMonths; i++ {
		interest := balance * monthlyRate
		principal := payment - interest
		balance -= principal

		rowPayment := payment
		if i == plan.TermMonths {
			rowPayment += balance
			balance = 0
		}

		rows = append(rows, domain.AmortizationRow{
			Number:           i,
			DueDate:          plan.StartDate.AddDays(DueDateIntervalDays * i),
			Interest:         Round2(interest),
			TotalPayment:     Round2(rowPayment),
			RemainingBalance: Round2(math.Max(balance, 0)),
		})
	}

	return rows, nil
}

// SaveLatestPlan keeps the most recent completed plan on the user record,
// overwriting any previous one. A failed save is logged but is not fatal
// to the calculation.
func (s *CreditService) SaveLatestPlan(ctx context.Context, userID string, plan domain.CreditPlan) {
	rec, err := s.users.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user record", zap.String("user", userID), zap.Error(err))
		return
	}
	if rec == nil {
		rec = &domain.UserRecord{}
	}
	rec.Credit = &plan

	if err := s.users.Save(ctx, userID, rec); err != nil {
		s.logger.Warn("failed to save credit plan", zap.String("user", userID), zap.Error(err))
	}
}
