package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"finbot/domain"
	"finbot/repository"
	"finbot/validation"
)

func newFormService(users repository.UserRepository) *FormService {
	deposits := NewDepositService(testCatalog(), DefaultTaxRatePct, zap.NewNop())
	credits := NewCreditService(users, zap.NewNop())
	return NewFormService(repository.NewSessionRepositoryMemory(), users, credits, deposits, zap.NewNop())
}

func mustSubmit(t *testing.T, svc *FormService, userID, text string) Reply {
	t.Helper()
	reply, err := svc.Submit(context.Background(), userID, text)
	if err != nil {
		t.Fatalf("Submit(%q): unexpected error %v", text, err)
	}
	return reply
}

func TestCreditForm_HappyPath(t *testing.T) {
	repo := newMockUserRepo()
	svc := newFormService(repo)
	ctx := context.Background()

	prompt, err := svc.Start(ctx, "u1", domain.FormCredit, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt == "" {
		t.Fatalf("expected the first prompt")
	}

	mustSubmit(t, svc, "u1", "10,000,000")
	mustSubmit(t, svc, "u1", "18.5")
	mustSubmit(t, svc, "u1", "24")
	reply := mustSubmit(t, svc, "u1", "01.10.2024")

	if reply.Done == nil {
		t.Fatalf("expected completion on the final step")
	}
	done := reply.Done
	if done.Kind != domain.FormCredit {
		t.Errorf("expected credit completion, got %v", done.Kind)
	}

	wantFields := []string{"amount", "rate", "term", "start_date"}
	if len(done.Fields) != len(wantFields) {
		t.Fatalf("expected %d fields, got %d", len(wantFields), len(done.Fields))
	}
	for i, name := range wantFields {
		if done.Fields[i].Name != name {
			t.Errorf("field %d: expected %q, got %q", i, name, done.Fields[i].Name)
		}
	}

	if done.Credit == nil || len(done.Credit.Schedule) != 24 {
		t.Fatalf("expected a 24-row schedule")
	}
	if rec := repo.records["u1"]; rec == nil || rec.Credit == nil || rec.Credit.Amount != 10_000_000 {
		t.Errorf("expected the plan written through to the user record")
	}

	// The session is torn down on completion.
	if _, err := svc.Submit(ctx, "u1", "anything"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after completion, got %v", err)
	}
}

func TestSubmit_InvalidInputDoesNotAdvance(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := svc.Submit(ctx, "u1", "not a number")
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if verr.Kind != validation.NotANumber {
		t.Errorf("expected NotANumber, got %v", verr.Kind)
	}
	if reply.Prompt != "Enter the credit amount:" {
		t.Errorf("expected the unchanged step's prompt back, got %q", reply.Prompt)
	}

	// The step counter did not move: a valid amount is still accepted here
	// and the machine asks for the rate next.
	reply = mustSubmit(t, svc, "u1", "5000000")
	if reply.Prompt != "Enter the annual interest rate (%):" {
		t.Errorf("expected the rate prompt, got %q", reply.Prompt)
	}
}

func TestCreditForm_StepsEnforceEngineCaps(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An amount above the engine's cap is rejected at the step, not at
	// completion, and the step does not advance.
	reply, err := svc.Submit(ctx, "u1", "2,000,000,000")
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Kind != validation.OutOfRange {
		t.Fatalf("expected OutOfRange for an over-cap amount, got %v", err)
	}
	if reply.Prompt != "Enter the credit amount:" {
		t.Errorf("expected the unchanged amount prompt back, got %q", reply.Prompt)
	}

	// The cap itself is still accepted.
	mustSubmit(t, svc, "u1", "1,000,000,000")

	// Same for the rate cap.
	if _, err := svc.Submit(ctx, "u1", "2000"); !errors.As(err, &verr) || verr.Kind != validation.OutOfRange {
		t.Fatalf("expected OutOfRange for an over-cap rate, got %v", err)
	}

	mustSubmit(t, svc, "u1", "18.5")
	mustSubmit(t, svc, "u1", "12")
	reply = mustSubmit(t, svc, "u1", "01.10.2024")

	if reply.Done == nil || reply.Done.Credit == nil {
		t.Fatalf("expected a credit completion at the cap amount")
	}
}

func TestSubmit_CompletionFailureKeepsSession(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	// A session whose stored amount fails the engine's checks (written
	// before the step-level caps existed, or by another writer) must
	// survive the failed completion.
	svc.sessions.Put(&domain.FormSession{
		UserID: "u1",
		Kind:   domain.FormCredit,
		Step:   3,
		Fields: map[string]any{
			fieldAmount: 2_000_000_000.0,
			fieldRate:   18.5,
			fieldTerm:   12,
		},
		LastActivity: time.Now(),
	})

	reply, err := svc.Submit(ctx, "u1", "01.10.2024")
	if !errors.Is(err, ErrInvalidPrincipal) {
		t.Fatalf("expected ErrInvalidPrincipal, got %v", err)
	}
	if reply.Prompt == "" {
		t.Errorf("expected the final step's prompt back for a retry")
	}

	// The session was not destroyed: the final step answers again instead
	// of reporting a missing session.
	if _, err := svc.Submit(ctx, "u1", "01.10.2024"); errors.Is(err, ErrNoSession) {
		t.Errorf("the session must survive a failed completion")
	}
}

func TestStart_RejectsSecondFormWithoutRestart(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Start(ctx, "u1", domain.FormDeposit, false); !errors.Is(err, ErrFormInProgress) {
		t.Errorf("expected ErrFormInProgress, got %v", err)
	}

	// An explicit restart discards the old session and its fields.
	prompt, err := svc.Start(ctx, "u1", domain.FormDeposit, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt != "Enter the deposit amount:" {
		t.Errorf("expected the deposit form to start over, got %q", prompt)
	}
}

func TestStart_UnknownForm(t *testing.T) {
	svc := newFormService(newMockUserRepo())

	if _, err := svc.Start(context.Background(), "u1", "mortgage", false); !errors.Is(err, ErrUnknownForm) {
		t.Errorf("expected ErrUnknownForm, got %v", err)
	}
}

func TestCancel_DiscardsSession(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormProfile, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustSubmit(t, svc, "u1", "30")

	svc.Cancel(ctx, "u1")

	if _, err := svc.Submit(ctx, "u1", "engineer"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after cancel, got %v", err)
	}
}

func TestProfileForm_WritesThrough(t *testing.T) {
	repo := newMockUserRepo()
	svc := newFormService(repo)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormProfile, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := []string{"30", "engineer", "12000000", "finance, chess", "no"}
	var reply Reply
	for _, a := range answers {
		reply = mustSubmit(t, svc, "u1", a)
	}

	if reply.Done == nil || reply.Done.Profile == nil {
		t.Fatalf("expected a profile completion")
	}
	profile := reply.Done.Profile
	if profile.Age != "30" || profile.HasBusiness != "no" {
		t.Errorf("unexpected profile %+v", profile)
	}

	rec := repo.records["u1"]
	if rec == nil || rec.Profile == nil {
		t.Fatalf("expected the profile written through to the user record")
	}
	got := rec.Profile.Answers()
	for i, want := range answers {
		if got[i] != want {
			t.Errorf("answer %d: expected %q, got %q", i, want, got[i])
		}
	}
}

func TestDepositForm_FullFlow(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormDeposit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Below the 100,000 minimum.
	_, err := svc.Submit(ctx, "u1", "50000")
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Kind != validation.OutOfRange {
		t.Fatalf("expected OutOfRange for a small amount, got %v", err)
	}

	mustSubmit(t, svc, "u1", "2,000,000")
	mustSubmit(t, svc, "u1", "12")

	// Unknown bank is rejected without advancing.
	if _, err := svc.Submit(ctx, "u1", "monopoly-bank"); err == nil {
		t.Fatalf("expected an error for an unknown bank")
	}

	mustSubmit(t, svc, "u1", "Kapitalbank")
	reply := mustSubmit(t, svc, "u1", "yes")

	if reply.Done == nil || reply.Done.Deposit == nil {
		t.Fatalf("expected a deposit completion")
	}
	dep := reply.Done.Deposit
	if dep.Bank.ID != "kapitalbank" {
		t.Errorf("expected kapitalbank, got %s", dep.Bank.ID)
	}
	if !dep.Plan.Capitalization {
		t.Errorf("expected a capitalized plan")
	}
	if dep.Projection.AnnualRate != 17.0 {
		t.Errorf("expected the bank's rate in the projection, got %v", dep.Projection.AnnualRate)
	}
}

func TestCancelStale(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	if _, err := svc.Start(ctx, "idle", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(10 * time.Minute)
	if _, err := svc.Start(ctx, "fresh", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(25 * time.Minute)
	if dropped := svc.CancelStale(30 * time.Minute); dropped != 1 {
		t.Fatalf("expected 1 stale session dropped, got %d", dropped)
	}

	if _, err := svc.Submit(ctx, "idle", "100000"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected the idle session to be gone, got %v", err)
	}
	if _, err := svc.Submit(ctx, "fresh", "100000"); err != nil {
		t.Errorf("the fresh session must survive the sweep, got %v", err)
	}
}

func TestUserLocks_DropIdleEntries(t *testing.T) {
	l := userLocks{locks: make(map[string]*userLock)}

	unlock := l.lock("u1")
	if len(l.locks) != 1 {
		t.Fatalf("expected one live entry, got %d", len(l.locks))
	}
	unlock()
	if len(l.locks) != 0 {
		t.Fatalf("expected the entry dropped after unlock, got %d", len(l.locks))
	}

	// A waiter keeps the entry alive until the last holder releases it.
	unlock = l.lock("u1")
	released := make(chan struct{})
	go func() {
		u := l.lock("u1")
		u()
		close(released)
	}()
	unlock()
	<-released

	if len(l.locks) != 0 {
		t.Fatalf("expected no entries once all holders released, got %d", len(l.locks))
	}
}

func TestFormService_NoLockEntriesBetweenEvents(t *testing.T) {
	svc := newFormService(newMockUserRepo())
	ctx := context.Background()

	if _, err := svc.Start(ctx, "u1", domain.FormCredit, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustSubmit(t, svc, "u1", "5000000")

	if n := len(svc.locks.locks); n != 0 {
		t.Errorf("expected no lock entries for idle users, got %d", n)
	}
}
