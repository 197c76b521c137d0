package service

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"finbot/domain"
	"finbot/repository"
)

// FieldValue is one collected answer, named after its step.
type FieldValue struct {
	Name  string
	Value any
}

// Completion is the result of a finished form: the collected fields in
// declaration order plus the outcome for the form kind that completed.
type Completion struct {
	Kind    domain.FormKind
	Fields  []FieldValue
	Profile *domain.UserProfile
	Credit  *CreditOutcome
	Deposit *DepositOutcome
}

type CreditOutcome struct {
	Plan     domain.CreditPlan
	Schedule []domain.AmortizationRow
}

type DepositOutcome struct {
	Plan       domain.DepositPlan
	Bank       domain.Bank
	Projection domain.DepositProjection
}

// Reply is the state machine's answer to one input event: the next prompt
// while the form continues, or the completion on the final step.
type Reply struct {
	Prompt string
	Done   *Completion
}

// FormService is the conversational form state machine. Concurrent events
// for the same user are serialized on a per-user lock; different users
// never block each other. Eligibility (channel membership, premium) is the
// caller's concern and is decided before these methods are invoked.
type FormService struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	credits  *CreditService
	deposits *DepositService
	steps    map[domain.FormKind][]FormStep
	locks    userLocks
	now      func() time.Time
	logger   *zap.Logger
}

func NewFormService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	credits *CreditService,
	deposits *DepositService,
	logger *zap.Logger,
) *FormService {
	s := &FormService{
		sessions: sessions,
		users:    users,
		credits:  credits,
		deposits: deposits,
		locks:    userLocks{locks: make(map[string]*userLock)},
		now:      time.Now,
		logger:   logger,
	}
	s.steps = s.buildSteps()
	return s
}

// Start opens a new session and returns the first prompt. If another form
// is already in progress it is rejected with ErrFormInProgress unless the
// caller explicitly asks for a restart, in which case the old session and
// its partial fields are discarded.
func (s *FormService) Start(ctx context.Context, userID string, kind domain.FormKind, restart bool) (string, error) {
	steps, ok := s.steps[kind]
	if !ok {
		return "", ErrUnknownForm
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if _, exists := s.sessions.Get(userID); exists && !restart {
		return "", ErrFormInProgress
	}

	s.sessions.Put(&domain.FormSession{
		UserID:       userID,
		Kind:         kind,
		Fields:       make(map[string]any),
		LastActivity: s.now(),
	})

	s.logger.Debug("form started", zap.String("user", userID), zap.String("form", string(kind)))
	return steps[0].Prompt, nil
}

// Submit feeds one raw input event into the user's session. Invalid input
// never advances the step or touches the partial fields: the validation
// error is returned together with the unchanged step's prompt so the
// caller can re-ask. Valid input on the final step returns the completion
// and destroys the session; if completing the form fails, the session is
// kept at the final step so the input can be retried.
func (s *FormService) Submit(ctx context.Context, userID, text string) (Reply, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	sess, ok := s.sessions.Get(userID)
	if !ok {
		return Reply{}, ErrNoSession
	}

	steps := s.steps[sess.Kind]
	step := steps[sess.Step]

	value, err := step.Parse(text)
	if err != nil {
		return Reply{Prompt: step.Prompt}, err
	}

	sess.Fields[step.Field] = value
	sess.Step++
	sess.LastActivity = s.now()

	if sess.Step < len(steps) {
		s.sessions.Put(sess)
		return Reply{Prompt: steps[sess.Step].Prompt}, nil
	}

	// The stored session stays at the final step until finish succeeds,
	// so a completion-time failure leaves the user there instead of
	// destroying everything they entered.
	done, err := s.finish(ctx, sess)
	if err != nil {
		return Reply{Prompt: step.Prompt}, err
	}

	s.sessions.Delete(userID)
	return Reply{Done: done}, nil
}

// Cancel discards any in-progress session. Cancelling with no session is
// a no-op.
func (s *FormService) Cancel(ctx context.Context, userID string) {
	unlock := s.locks.lock(userID)
	defer unlock()

	s.sessions.Delete(userID)
}

// CancelStale cancels sessions idle for longer than maxIdle and returns
// how many were dropped. Expiry policy lives here, outside the transition
// logic; the sweeper calls this on a timer.
func (s *FormService) CancelStale(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	var dropped int
	for _, userID := range s.sessions.IdleSince(cutoff) {
		unlock := s.locks.lock(userID)
		if sess, ok := s.sessions.Get(userID); ok && sess.LastActivity.Before(cutoff) {
			s.sessions.Delete(userID)
			dropped++
			s.logger.Info("stale form session cancelled",
				zap.String("user", userID), zap.String("form", string(sess.Kind)))
		}
		unlock()
	}
	return dropped
}

// finish converts the accumulated fields into the typed outcome for the
// completed form kind and performs the write-through side effects.
func (s *FormService) finish(ctx context.Context, sess *domain.FormSession) (*Completion, error) {
	steps := s.steps[sess.Kind]
	fields := make([]FieldValue, 0, len(steps))
	for _, st := range steps {
		fields = append(fields, FieldValue{Name: st.Field, Value: sess.Fields[st.Field]})
	}

	done := &Completion{Kind: sess.Kind, Fields: fields}

	switch sess.Kind {
	case domain.FormProfile:
		profile := &domain.UserProfile{
			Age:         sess.Fields[fieldAge].(string),
			Occupation:  sess.Fields[fieldOccupation].(string),
			Income:      sess.Fields[fieldIncome].(string),
			Interests:   sess.Fields[fieldInterests].(string),
			HasBusiness: sess.Fields[fieldHasBusiness].(string),
		}
		done.Profile = profile
		s.saveProfile(ctx, sess.UserID, profile)

	case domain.FormCredit:
		plan := domain.CreditPlan{
			Amount:     sess.Fields[fieldAmount].(float64),
			AnnualRate: sess.Fields[fieldRate].(float64),
			TermMonths: sess.Fields[fieldTerm].(int),
			StartDate:  sess.Fields[fieldStartDate].(civil.Date),
		}
		schedule, err := s.credits.Amortize(plan)
		if err != nil {
			return nil, err
		}
		s.credits.SaveLatestPlan(ctx, sess.UserID, plan)
		done.Credit = &CreditOutcome{Plan: plan, Schedule: schedule}

	case domain.FormDeposit:
		plan := domain.DepositPlan{
			Amount:         sess.Fields[fieldAmount].(float64),
			TermMonths:     sess.Fields[fieldTerm].(int),
			BankID:         sess.Fields[fieldBank].(string),
			Capitalization: sess.Fields[fieldCapitalization].(bool),
		}
		bank, ok := s.deposits.Bank(plan.BankID)
		if !ok {
			return nil, ErrUnknownBank
		}
		proj, err := s.deposits.Project(plan.Amount, bank.AnnualRate, plan.TermMonths, plan.Capitalization)
		if err != nil {
			return nil, err
		}
		done.Deposit = &DepositOutcome{Plan: plan, Bank: bank, Projection: proj}
	}

	s.logger.Info("form completed", zap.String("user", sess.UserID), zap.String("form", string(sess.Kind)))
	return done, nil
}

func (s *FormService) saveProfile(ctx context.Context, userID string, profile *domain.UserProfile) {
	rec, err := s.users.Load(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user record", zap.String("user", userID), zap.Error(err))
		rec = nil
	}
	if rec == nil {
		rec = &domain.UserRecord{}
	}
	rec.Profile = profile

	if err := s.users.Save(ctx, userID, rec); err != nil {
		s.logger.Warn("failed to save profile", zap.String("user", userID), zap.Error(err))
	}
}

// userLocks hands out one mutex per user id so that events for the same
// user are processed one at a time. Entries are refcounted and dropped as
// soon as no goroutine holds or waits for them, so the map only ever
// tracks users with in-flight events.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	e, ok := l.locks[userID]
	if !ok {
		e = &userLock{}
		l.locks[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
