package service

import (
	"math"

	"go.uber.org/zap"

	"finbot/domain"
)

// DepositService projects deposit returns against an injected bank catalog.
// The catalog slice is read-only and its order is the display order.
type DepositService struct {
	catalog []domain.Bank
	taxRate float64
	logger  *zap.Logger
}

func NewDepositService(catalog []domain.Bank, taxRatePct float64, logger *zap.Logger) *DepositService {
	return &DepositService{catalog: catalog, taxRate: taxRatePct, logger: logger}
}

// Catalog returns the injected bank catalog in its original order.
func (s *DepositService) Catalog() []domain.Bank {
	return s.catalog
}

// Bank looks up a catalog entry by id.
func (s *DepositService) Bank(id string) (domain.Bank, bool) {
	for _, b := range s.catalog {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Bank{}, false
}

// Project computes a deposit projection, compounding monthly when
// capitalization is set and using simple interest otherwise. Monetary
// outputs are rounded once at the boundary.
func (s *DepositService) Project(amount, annualRate float64, termMonths int, capitalization bool) (domain.DepositProjection, error) {
	if amount <= 0 {
		return domain.DepositProjection{}, ErrInvalidPrincipal
	}
	if termMonths <= 0 {
		return domain.DepositProjection{}, ErrInvalidTerm
	}
	if annualRate < 0 {
		return domain.DepositProjection{}, ErrInvalidRate
	}

	monthlyRate := annualRate / 100 / 12

	var grossInterest float64
	if capitalization {
		total := amount * math.Pow(1+monthlyRate, float64(termMonths))
		grossInterest = total - amount
	} else {
		grossInterest = amount * monthlyRate * float64(termMonths)
	}

	taxAmount := grossInterest * s.taxRate / 100
	netInterest := grossInterest - taxAmount

	return domain.DepositProjection{
		Amount:         amount,
		AnnualRate:     annualRate,
		TermMonths:     termMonths,
		Capitalization: capitalization,
		GrossInterest:  Round2(grossInterest),
		GrossTotal:     Round2(amount + grossInterest),
		MonthlyIncome:  Round2(grossInterest / float64(termMonths)),
		TaxRate:        s.taxRate,
		TaxAmount:      Round2(taxAmount),
		NetInterest:    Round2(netInterest),
		NetTotal:       Round2(amount + netInterest),
	}, nil
}

// Compare projects a capitalized deposit for every catalog bank whose
// minimum does not exceed the amount. Catalog order is preserved so the
// output is stable.
func (s *DepositService) Compare(amount float64, termMonths int) ([]domain.BankComparison, error) {
	if amount <= 0 {
		return nil, ErrInvalidPrincipal
	}
	if termMonths <= 0 {
		return nil, ErrInvalidTerm
	}

	var out []domain.BankComparison
	for _, b := range s.catalog {
		if amount < b.MinAmount {
			continue
		}
		proj, err := s.Project(amount, b.AnnualRate, termMonths, true)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.BankComparison{Bank: b, Projection: proj})
	}
	return out, nil
}
