// Package report converts calculation results into structured, display
// ready rows. It formats numbers and dates into strings but does no markup
// or pixel rendering; that belongs to the transport collaborators.
package report

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"finbot/domain"
)

// MaxScheduleRows caps the rows included in a schedule report. Rendering
// collaborators show at most two years of payments; totals still cover the
// whole schedule.
const MaxScheduleRows = 24

type ScheduleRow struct {
	Number           int
	DueDate          string
	Interest         string
	TotalPayment     string
	RemainingBalance string
}

type ScheduleReport struct {
	Rows          []ScheduleRow
	TotalRows     int
	Truncated     bool
	TotalInterest string
	TotalPaid     string
}

// BuildScheduleReport turns an amortization schedule into display rows.
// Totals are computed over every row even when the row list is truncated.
func BuildScheduleReport(schedule []domain.AmortizationRow) ScheduleReport {
	var totalInterest, totalPaid float64
	for _, row := range schedule {
		totalInterest += row.Interest
		totalPaid += row.TotalPayment
	}

	shown := schedule
	if len(shown) > MaxScheduleRows {
		shown = shown[:MaxScheduleRows]
	}

	rows := make([]ScheduleRow, 0, len(shown))
	for _, row := range shown {
		rows = append(rows, ScheduleRow{
			Number:           row.Number,
			DueDate:          FormatDate(row.DueDate),
			Interest:         FormatAmount(row.Interest),
			TotalPayment:     FormatAmount(row.TotalPayment),
			RemainingBalance: FormatAmount(row.RemainingBalance),
		})
	}

	return ScheduleReport{
		Rows:          rows,
		TotalRows:     len(schedule),
		Truncated:     len(schedule) > MaxScheduleRows,
		TotalInterest: FormatAmount(totalInterest),
		TotalPaid:     FormatAmount(totalPaid),
	}
}

type DepositReport struct {
	BankName       string
	Amount         string
	AnnualRate     float64
	TermMonths     int
	Capitalization bool
	GrossInterest  string
	GrossTotal     string
	MonthlyIncome  string
	TaxRate        float64
	TaxAmount      string
	NetInterest    string
	NetTotal       string
	Advice         []string
}

// BuildDepositReport turns a projection into display fields plus the
// advice hints shown under the original calculator's result.
func BuildDepositReport(bank domain.Bank, proj domain.DepositProjection) DepositReport {
	return DepositReport{
		BankName:       bank.Name,
		Amount:         FormatAmount(proj.Amount),
		AnnualRate:     proj.AnnualRate,
		TermMonths:     proj.TermMonths,
		Capitalization: proj.Capitalization,
		GrossInterest:  FormatAmount(proj.GrossInterest),
		GrossTotal:     FormatAmount(proj.GrossTotal),
		MonthlyIncome:  FormatAmount(proj.MonthlyIncome),
		TaxRate:        proj.TaxRate,
		TaxAmount:      FormatAmount(proj.TaxAmount),
		NetInterest:    FormatAmount(proj.NetInterest),
		NetTotal:       FormatAmount(proj.NetTotal),
		Advice:         adviceFor(proj),
	}
}

func adviceFor(proj domain.DepositProjection) []string {
	var advice []string

	if proj.AnnualRate > 20 {
		advice = append(advice, "High rate, higher risk")
	} else if proj.AnnualRate < 10 {
		advice = append(advice, "Low rate, lower risk")
	}

	if proj.TermMonths > 24 {
		advice = append(advice, "Long term, steady income")
	} else {
		advice = append(advice, "Short term, quick access")
	}

	if proj.Capitalization {
		advice = append(advice, "Compounding earns more over time")
	} else {
		advice = append(advice, "Simple interest, simple math")
	}

	return advice
}

type ComparisonRow struct {
	BankID      string
	BankName    string
	AnnualRate  float64
	NetInterest string
	MinAmount   string
}

type ComparisonReport struct {
	Rows []ComparisonRow
}

// BuildComparisonReport keeps the comparison in catalog order.
func BuildComparisonReport(comparisons []domain.BankComparison) ComparisonReport {
	rows := make([]ComparisonRow, 0, len(comparisons))
	for _, cmp := range comparisons {
		rows = append(rows, ComparisonRow{
			BankID:      cmp.Bank.ID,
			BankName:    cmp.Bank.Name,
			AnnualRate:  cmp.Bank.AnnualRate,
			NetInterest: FormatAmount(cmp.Projection.NetInterest),
			MinAmount:   FormatAmount(cmp.Bank.MinAmount),
		})
	}
	return ComparisonReport{Rows: rows}
}

// FormatDate renders a date as dd.mm.yyyy.
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, int(d.Month), d.Year)
}

// FormatAmount renders a monetary value with comma thousands separators
// and two decimal places.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteString(frac)
	return b.String()
}
