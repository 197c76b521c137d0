package repository

import (
	"context"
	"testing"
	"time"

	"finbot/domain"
)

func TestUserRepositoryMemory_RoundTrip(t *testing.T) {
	repo := NewUserRepositoryMemory()
	ctx := context.Background()

	rec, err := repo.Load(ctx, "u1")
	if err != nil || rec != nil {
		t.Fatalf("expected no record for an unknown user, got %+v, %v", rec, err)
	}

	want := &domain.UserRecord{
		Profile: &domain.UserProfile{Age: "30", Occupation: "engineer"},
	}
	if err := repo.Save(ctx, "u1", want); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Profile == nil || got.Profile.Age != "30" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestSessionRepositoryMemory_IdleSince(t *testing.T) {
	repo := NewSessionRepositoryMemory()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	repo.Put(&domain.FormSession{UserID: "old", Kind: domain.FormCredit, LastActivity: base})
	repo.Put(&domain.FormSession{UserID: "new", Kind: domain.FormCredit, LastActivity: base.Add(time.Hour)})

	stale := repo.IdleSince(base.Add(30 * time.Minute))
	if len(stale) != 1 || stale[0] != "old" {
		t.Errorf("expected only the old session, got %v", stale)
	}

	repo.Delete("old")
	if _, ok := repo.Get("old"); ok {
		t.Errorf("expected the session to be deleted")
	}
}

func TestEntitlementRepositoryMemory(t *testing.T) {
	repo := NewEntitlementRepositoryMemory()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "u1")
	if err != nil || ok {
		t.Fatalf("expected no entitlement, got ok=%v err=%v", ok, err)
	}

	now := time.Now()
	ent := domain.Entitlement{UserID: "u1", GrantedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Set(ctx, ent); err != nil {
		t.Fatal(err)
	}

	got, ok, err := repo.Get(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("expected the entitlement back, got ok=%v err=%v", ok, err)
	}
	if !got.ExpiresAt.Equal(ent.ExpiresAt) {
		t.Errorf("expected expiry %v, got %v", ent.ExpiresAt, got.ExpiresAt)
	}
}
