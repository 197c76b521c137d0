package repository

import (
	"context"

	"finbot/domain"
)

// EntitlementRepository stores premium grants keyed by user. A regrant
// replaces the stored entitlement entirely.
type EntitlementRepository interface {
	Set(ctx context.Context, ent domain.Entitlement) error
	Get(ctx context.Context, userID string) (domain.Entitlement, bool, error)
}
