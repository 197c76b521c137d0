package domain

import "cloud.google.com/go/civil"

// CreditPlan describes a loan to amortize.
type CreditPlan struct {
	Amount     float64
	AnnualRate float64
	TermMonths int
	StartDate  civil.Date
}

// AmortizationRow is one month of a payment schedule. RemainingBalance is
// non-increasing across rows and is exactly zero on the final row.
type AmortizationRow struct {
	Number           int
	DueDate          civil.Date
	Interest         float64
	TotalPayment     float64
	RemainingBalance float64
}
