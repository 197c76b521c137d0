package repository

import (
	"context"
	"sync"

	"finbot/domain"
)

// UserRepositoryMemory is an in-memory implementation of UserRepository.
type UserRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.UserRecord
}

// NewUserRepositoryMemory creates a new in-memory user repository.
func NewUserRepositoryMemory() *UserRepositoryMemory {
	return &UserRepositoryMemory{
		data: make(map[string]domain.UserRecord),
	}
}

func (r *UserRepositoryMemory) Load(_ context.Context, userID string) (*domain.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.data[userID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (r *UserRepositoryMemory) Save(_ context.Context, userID string, rec *domain.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[userID] = *rec
	return nil
}
