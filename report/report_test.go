package report

import (
	"testing"

	"cloud.google.com/go/civil"

	"finbot/domain"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{100, "100.00"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{1000000, "1,000,000.00"},
		{-54321.5, "-54,321.50"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := civil.Date{Year: 2024, Month: 10, Day: 1}
	if got := FormatDate(d); got != "01.10.2024" {
		t.Errorf("expected 01.10.2024, got %q", got)
	}
}

func makeSchedule(n int) []domain.AmortizationRow {
	rows := make([]domain.AmortizationRow, 0, n)
	start := civil.Date{Year: 2025, Month: 1, Day: 1}
	for i := 1; i <= n; i++ {
		rows = append(rows, domain.AmortizationRow{
			Number:       i,
			DueDate:      start.AddDays(30 * i),
			Interest:     10,
			TotalPayment: 110,
		})
	}
	return rows
}

func TestBuildScheduleReport_TruncatesButTotalsEverything(t *testing.T) {
	rep := BuildScheduleReport(makeSchedule(36))

	if len(rep.Rows) != MaxScheduleRows {
		t.Errorf("expected %d display rows, got %d", MaxScheduleRows, len(rep.Rows))
	}
	if !rep.Truncated || rep.TotalRows != 36 {
		t.Errorf("expected truncation over 36 rows, got %+v", rep)
	}
	if rep.TotalInterest != "360.00" {
		t.Errorf("totals must cover the full schedule, got %q", rep.TotalInterest)
	}
	if rep.TotalPaid != "3,960.00" {
		t.Errorf("expected total paid 3,960.00, got %q", rep.TotalPaid)
	}
}

func TestBuildScheduleReport_Short(t *testing.T) {
	rep := BuildScheduleReport(makeSchedule(6))

	if len(rep.Rows) != 6 || rep.Truncated {
		t.Errorf("short schedules are not truncated, got %+v", rep)
	}
	if rep.Rows[0].DueDate != "31.01.2025" {
		t.Errorf("expected 31.01.2025, got %q", rep.Rows[0].DueDate)
	}
}

func TestBuildDepositReport_Advice(t *testing.T) {
	bank := domain.Bank{ID: "nbu", Name: "NBU", AnnualRate: 18.5}
	proj := domain.DepositProjection{
		Amount:         1_000_000,
		AnnualRate:     18.5,
		TermMonths:     12,
		Capitalization: true,
		NetInterest:    100,
		NetTotal:       1_000_100,
	}

	rep := BuildDepositReport(bank, proj)
	if rep.BankName != "NBU" {
		t.Errorf("expected bank name NBU, got %q", rep.BankName)
	}

	want := []string{"Short term, quick access", "Compounding earns more over time"}
	if len(rep.Advice) != len(want) {
		t.Fatalf("expected %d advice lines, got %v", len(want), rep.Advice)
	}
	for i := range want {
		if rep.Advice[i] != want[i] {
			t.Errorf("advice %d: expected %q, got %q", i, want[i], rep.Advice[i])
		}
	}
}

func TestBuildComparisonReport_KeepsOrder(t *testing.T) {
	comparisons := []domain.BankComparison{
		{Bank: domain.Bank{ID: "b", Name: "Bank B", AnnualRate: 15}},
		{Bank: domain.Bank{ID: "a", Name: "Bank A", AnnualRate: 18}},
	}

	rep := BuildComparisonReport(comparisons)
	if len(rep.Rows) != 2 || rep.Rows[0].BankID != "b" || rep.Rows[1].BankID != "a" {
		t.Errorf("comparison order must match input order, got %+v", rep.Rows)
	}
}
