package http

import "context"

// MembershipChecker decides whether a user may use the gated forms. The
// real check (chat channel membership) lives in the transport collaborator;
// the core only consumes the verdict.
type MembershipChecker interface {
	IsEligible(ctx context.Context, userID string) (bool, error)
}

// AllowAllMembership admits every user. Used when no membership gate is
// wired in.
type AllowAllMembership struct{}

func (AllowAllMembership) IsEligible(context.Context, string) (bool, error) {
	return true, nil
}
