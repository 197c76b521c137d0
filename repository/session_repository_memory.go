package repository

import (
	"sync"
	"time"

	"finbot/domain"
)

// SessionRepositoryMemory is the in-memory session store. Sessions are
// stored by value so readers like IdleSince never observe a session that
// a submit is mutating.
type SessionRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.FormSession
}

func NewSessionRepositoryMemory() *SessionRepositoryMemory {
	return &SessionRepositoryMemory{
		data: make(map[string]domain.FormSession),
	}
}

func (r *SessionRepositoryMemory) Get(userID string) (*domain.FormSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.data[userID]
	if !ok {
		return nil, false
	}
	out := sess
	return &out, true
}

func (r *SessionRepositoryMemory) Put(sess *domain.FormSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[sess.UserID] = *sess
}

func (r *SessionRepositoryMemory) Delete(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, userID)
}

func (r *SessionRepositoryMemory) IdleSince(cutoff time.Time) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stale []string
	for userID, sess := range r.data {
		if sess.LastActivity.Before(cutoff) {
			stale = append(stale, userID)
		}
	}
	return stale
}
