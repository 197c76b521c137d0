package domain

import "time"

// Entitlement is a time-bounded premium grant. Whether it is active is
// always recomputed from ExpiresAt, never stored.
type Entitlement struct {
	UserID    string
	GrantedAt time.Time
	ExpiresAt time.Time
}
