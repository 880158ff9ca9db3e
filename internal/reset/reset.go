// Package reset runs the day-boundary cleanup of the daily ledger.
package reset

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"station-board-backend/internal/parse"
	"station-board-backend/internal/store"
)

// Service purges past operating days, on demand and at every midnight.
type Service struct {
	store  store.Store
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time

	// serialises manual and scheduled runs within this process
	mu sync.Mutex
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a reset Service for the given operating-day location.
func NewService(st store.Store, loc *time.Location, logger *zap.Logger, opts ...Option) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{store: st, loc: loc, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the operating day the next run will keep.
func (s *Service) Today() string {
	return parse.OperatingDay(s.now(), s.loc)
}

// RunOnce removes every ledger row dated before today. The counts of the
// steps that succeeded are returned even when another step failed.
func (s *Service) RunOnce(ctx context.Context) (store.ResetCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.Today()
	start := time.Now()
	counts, err := s.store.PurgeBefore(ctx, today)
	fields := []zap.Field{
		zap.String("today", today),
		zap.Int64("doctor_assignments", counts.DoctorAssignments),
		zap.Int64("staff_assignments", counts.StaffAssignments),
		zap.Int64("staff", counts.Staff),
		zap.Int64("patient_queue", counts.PatientQueue),
		zap.Int64("stale_pointers", counts.StalePointers),
		zap.Duration("took", time.Since(start)),
	}
	if err != nil {
		s.logger.Error("daily reset finished with errors", append(fields, zap.Error(err))...)
		return counts, err
	}
	s.logger.Info("daily reset finished", fields...)
	return counts, nil
}

// Run resets once immediately, then again at each midnight in the configured
// location, until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("starting daily reset scheduler", zap.String("timezone", s.loc.String()))
	_, _ = s.RunOnce(ctx)

	timer := time.NewTimer(s.untilBoundary())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("daily reset scheduler shutting down")
			return
		case <-timer.C:
			_, _ = s.RunOnce(ctx)
			timer.Reset(s.untilBoundary())
		}
	}
}

func (s *Service) untilBoundary() time.Duration {
	now := s.now()
	// A second past midnight so the new day is already current when the run starts.
	return parse.NextDayBoundary(now, s.loc).Sub(now) + time.Second
}
