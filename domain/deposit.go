package domain

// Bank is one static catalog entry. The catalog is loaded once at startup
// and injected read-only; its slice order is the display order.
type Bank struct {
	ID         string
	Name       string
	AnnualRate float64
	MinAmount  float64
}

// DepositPlan is the transient result of a completed deposit form. It is
// never persisted.
type DepositPlan struct {
	Amount         float64
	TermMonths     int
	BankID         string
	Capitalization bool
}

type DepositProjection struct {
	Amount         float64
	AnnualRate     float64
	TermMonths     int
	Capitalization bool
	GrossInterest  float64
	GrossTotal     float64
	MonthlyIncome  float64
	TaxRate        float64
	TaxAmount      float64
	NetInterest    float64
	NetTotal       float64
}

// BankComparison pairs a catalog entry with a capitalized projection for it.
type BankComparison struct {
	Bank       Bank
	Projection DepositProjection
}
