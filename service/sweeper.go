package service

import (
	"time"

	"go.uber.org/zap"
)

// SessionSweeper cancels form sessions that have been idle for too long.
// It runs beside the state machine, not inside it, so abandoned forms stop
// occupying memory without the transition logic knowing about expiry.
type SessionSweeper struct {
	forms    *FormService
	maxIdle  time.Duration
	interval time.Duration
	stop     chan struct{}
	logger   *zap.Logger
}

func NewSessionSweeper(forms *FormService, maxIdle, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	sw := &SessionSweeper{
		forms:    forms,
		maxIdle:  maxIdle,
		interval: interval,
		stop:     make(chan struct{}),
		logger:   logger,
	}
	go sw.loop()
	return sw
}

func (sw *SessionSweeper) loop() {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if dropped := sw.forms.CancelStale(sw.maxIdle); dropped > 0 {
				sw.logger.Info("swept stale sessions", zap.Int("count", dropped))
			}
		case <-sw.stop:
			return
		}
	}
}

func (sw *SessionSweeper) Stop() {
	close(sw.stop)
}
