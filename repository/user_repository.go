package repository

import (
	"context"

	"finbot/domain"
)

// UserRepository stores the per-user record. Writes are last-writer-wins;
// callers serialize per-user access themselves.
type UserRepository interface {
	Load(ctx context.Context, userID string) (*domain.UserRecord, error)
	Save(ctx context.Context, userID string, rec *domain.UserRecord) error
}
