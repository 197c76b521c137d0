// Package validation contains the pure field parsers used by form steps.
// Every failure is a *Error carrying a Kind; malformed input is always
// recoverable and never reaches the calculation engine.
package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the input/display format for calendar dates.
const DateLayout = "02.01.2006"

type Kind string

const (
	NotANumber   Kind = "not_a_number"
	NotAnInteger Kind = "not_an_integer"
	OutOfRange   Kind = "out_of_range"
	BadFormat    Kind = "bad_format"
)

// Error is a recoverable input rejection. The caller re-prompts and the
// form step does not advance.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

var amountCleaner = strings.NewReplacer(",", "", " ", "", " ", "")

// ParseAmount parses a monetary amount, tolerating thousands separators
// (commas and spaces). The value must be finite and non-negative.
func ParseAmount(text string) (float64, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(text))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewError(NotANumber, "enter a number, e.g. 1000000")
	}
	if v < 0 {
		return 0, NewError(OutOfRange, "the amount cannot be negative")
	}
	return v, nil
}

// ParseRate parses a percentage, accepting either comma or dot as the
// decimal separator.
func ParseRate(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewError(NotANumber, "enter the rate as a number, e.g. 18.5")
	}
	if v < 0 {
		return 0, NewError(OutOfRange, "the rate cannot be negative")
	}
	return v, nil
}

// ParseTerm parses a whole number of months within [min, max].
func ParseTerm(text string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, NewError(NotAnInteger, "enter a whole number of months, e.g. 12")
	}
	if n < min || n > max {
		return 0, NewError(OutOfRange, "the term must be between %d and %d months", min, max)
	}
	return n, nil
}

// ParseDate parses a dd.mm.yyyy calendar date.
func ParseDate(text string) (civil.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(text))
	if err != nil {
		return civil.Date{}, NewError(BadFormat, "enter the date as dd.mm.yyyy, e.g. 01.10.2024")
	}
	return civil.DateOf(t), nil
}

// ParseText accepts any non-empty free-text answer.
func ParseText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", NewError(BadFormat, "the answer cannot be empty")
	}
	return trimmed, nil
}

// ParseYesNo parses a yes/no answer.
func ParseYesNo(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return false, NewError(BadFormat, "answer yes or no")
}
