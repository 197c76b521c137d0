package service

const (
	MaxCreditAmount     = 1_000_000_000.0
	MaxCreditRate       = 1000.0 // % per year
	MaxCreditTermMonths = 360    // 30 years
	MinCreditTermMonths = 1

	MinDepositAmount     = 100_000.0
	MinDepositTermMonths = 1
	MaxDepositTermMonths = 60

	// DefaultTaxRatePct is the income tax withheld from deposit interest.
	DefaultTaxRatePct = 12.0

	DefaultEntitlementDays = 30

	// DueDateIntervalDays approximates one month for schedule due dates.
	DueDateIntervalDays = 30
)
