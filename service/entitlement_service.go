package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"finbot/domain"
	"finbot/repository"
)

// EntitlementService tracks time-bounded premium access. A grant always
// overwrites the previous expiry rather than extending it.
type EntitlementService struct {
	store  repository.EntitlementRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewEntitlementService(store repository.EntitlementRepository, logger *zap.Logger) *EntitlementService {
	return &EntitlementService{store: store, now: time.Now, logger: logger}
}

// Grant gives the user premium access for the given number of days from
// now, replacing any existing grant.
func (s *EntitlementService) Grant(ctx context.Context, userID string, days int) (domain.Entitlement, error) {
	if days <= 0 {
		return domain.Entitlement{}, ErrInvalidDuration
	}

	now := s.now()
	ent := domain.Entitlement{
		UserID:    userID,
		GrantedAt: now,
		ExpiresAt: now.Add(time.Duration(days) * 24 * time.Hour),
	}
	if err := s.store.Set(ctx, ent); err != nil {
		return domain.Entitlement{}, err
	}

	s.logger.Info("premium granted",
		zap.String("user", userID), zap.Time("expires", ent.ExpiresAt))
	return ent, nil
}

// IsActive reports whether the user's grant is still valid. The answer is
// recomputed from the stored expiry on every call; unknown users are
// inactive.
func (s *EntitlementService) IsActive(ctx context.Context, userID string) (bool, error) {
	ent, ok, err := s.store.Get(ctx, userID)
	if err != nil || !ok {
		return false, err
	}
	return s.now().Before(ent.ExpiresAt), nil
}
