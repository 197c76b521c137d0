package repository

import (
	"context"
	"sync"

	"finbot/domain"
)

// EntitlementRepositoryMemory is an in-memory implementation of
// EntitlementRepository.
type EntitlementRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Entitlement
}

func NewEntitlementRepositoryMemory() *EntitlementRepositoryMemory {
	return &EntitlementRepositoryMemory{
		data: make(map[string]domain.Entitlement),
	}
}

func (r *EntitlementRepositoryMemory) Set(_ context.Context, ent domain.Entitlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[ent.UserID] = ent
	return nil
}

func (r *EntitlementRepositoryMemory) Get(_ context.Context, userID string) (domain.Entitlement, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ent, ok := r.data[userID]
	return ent, ok, nil
}
