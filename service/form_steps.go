package service

import (
	"strings"

	"finbot/domain"
	"finbot/validation"
)

// FormStep declares one field of a form: its name, the prompt shown to the
// user and the parser applied to raw input. Step order is fixed per form
// kind and never depends on runtime values.
type FormStep struct {
	Field  string
	Prompt string
	Parse  func(text string) (any, error)
}

// Field names, also the keys of FormSession.Fields.
const (
	fieldAge         = "age"
	fieldOccupation  = "occupation"
	fieldIncome      = "income"
	fieldInterests   = "interests"
	fieldHasBusiness = "has_business"

	fieldAmount         = "amount"
	fieldRate           = "rate"
	fieldTerm           = "term"
	fieldStartDate      = "start_date"
	fieldBank           = "bank"
	fieldCapitalization = "capitalization"
)

func parseText(text string) (any, error) { return validation.ParseText(text) }

// buildSteps declares the step table for every form kind. Bank membership
// is the only step that needs runtime data (the catalog), which is why the
// table is built against the service instance. Every parser enforces at
// least the bounds the calculation services check, so fields accepted step
// by step can never be rejected at completion time.
func (s *FormService) buildSteps() map[domain.FormKind][]FormStep {
	return map[domain.FormKind][]FormStep{
		domain.FormProfile: {
			{Field: fieldAge, Prompt: "How old are you?", Parse: parseText},
			{Field: fieldOccupation, Prompt: "What is your occupation or field of study?", Parse: parseText},
			{Field: fieldIncome, Prompt: "What is your monthly income?", Parse: parseText},
			{Field: fieldInterests, Prompt: "What are your interests?", Parse: parseText},
			{Field: fieldHasBusiness, Prompt: "Do you currently run a business? (yes/no)", Parse: parseText},
		},
		domain.FormCredit: {
			{Field: fieldAmount, Prompt: "Enter the credit amount:", Parse: func(text string) (any, error) {
				v, err := validation.ParseAmount(text)
				if err != nil {
					return nil, err
				}
				if v <= 0 {
					return nil, validation.NewError(validation.OutOfRange, "the credit amount must be positive")
				}
				if v > MaxCreditAmount {
					return nil, validation.NewError(validation.OutOfRange, "the credit amount must not exceed 1,000,000,000")
				}
				return v, nil
			}},
			{Field: fieldRate, Prompt: "Enter the annual interest rate (%):", Parse: func(text string) (any, error) {
				v, err := validation.ParseRate(text)
				if err != nil {
					return nil, err
				}
				if v > MaxCreditRate {
					return nil, validation.NewError(validation.OutOfRange, "the rate must not exceed %v%%", MaxCreditRate)
				}
				return v, nil
			}},
			{Field: fieldTerm, Prompt: "Enter the credit term in months:", Parse: func(text string) (any, error) {
				return validation.ParseTerm(text, MinCreditTermMonths, MaxCreditTermMonths)
			}},
			{Field: fieldStartDate, Prompt: "Enter the start date (dd.mm.yyyy, e.g. 01.10.2024):", Parse: func(text string) (any, error) {
				return validation.ParseDate(text)
			}},
		},
		domain.FormDeposit: {
			{Field: fieldAmount, Prompt: "Enter the deposit amount:", Parse: func(text string) (any, error) {
				v, err := validation.ParseAmount(text)
				if err != nil {
					return nil, err
				}
				if v < MinDepositAmount {
					return nil, validation.NewError(validation.OutOfRange, "the minimum deposit is 100,000")
				}
				return v, nil
			}},
			{Field: fieldTerm, Prompt: "Enter the deposit term in months (1-60):", Parse: func(text string) (any, error) {
				return validation.ParseTerm(text, MinDepositTermMonths, MaxDepositTermMonths)
			}},
			{Field: fieldBank, Prompt: "Choose a bank:", Parse: func(text string) (any, error) {
				id := strings.ToLower(strings.TrimSpace(text))
				if _, ok := s.deposits.Bank(id); !ok {
					return nil, validation.NewError(validation.OutOfRange, "choose one of the listed banks")
				}
				return id, nil
			}},
			{Field: fieldCapitalization, Prompt: "Capitalize interest? (yes = compound, no = simple)", Parse: func(text string) (any, error) {
				return validation.ParseYesNo(text)
			}},
		},
	}
}
