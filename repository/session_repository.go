package repository

import (
	"time"

	"finbot/domain"
)

// SessionRepository holds in-progress form sessions. Sessions are transient
// and never persisted; the memory implementation is the only one.
type SessionRepository interface {
	Get(userID string) (*domain.FormSession, bool)
	Put(sess *domain.FormSession)
	Delete(userID string)
	// IdleSince returns the user ids of sessions with no activity since
	// the cutoff, for the stale-session sweeper.
	IdleSince(cutoff time.Time) []string
}
