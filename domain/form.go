package domain

import "time"

// FormKind identifies one of the fixed conversational flows.
type FormKind string

const (
	FormProfile FormKind = "profile"
	FormCredit  FormKind = "credit"
	FormDeposit FormKind = "deposit"
)

// FormSession tracks a user's progress through a multi-step form. At most
// one session exists per user; it lives from the start trigger until the
// final step completes or the form is cancelled.
type FormSession struct {
	UserID       string
	Kind         FormKind
	Step         int
	Fields       map[string]any
	LastActivity time.Time
}
