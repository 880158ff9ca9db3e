// Package assignment drives the daily ledger: it validates board requests,
// fixes the operating day on the server and emits a station event after each
// successful change.
package assignment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"station-board-backend/internal/parse"
	"station-board-backend/internal/store"
)

// Notifier receives a station event after every successful mutation.
// Implementations must not block.
type Notifier interface {
	Notify(stationID int64, reason string)
}

// NopNotifier discards every event.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(int64, string) {}

// Config holds the assignment rules.
type Config struct {
	MaxStaffPerRoom int
	Location        *time.Location
}

// Engine mutates the ledger on behalf of the board.
type Engine struct {
	store    store.Store
	cfg      Config
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine. A nil notifier or logger is replaced by a no-op.
func NewEngine(st store.Store, cfg Config, notifier Notifier, logger *zap.Logger, opts ...Option) *Engine {
	if cfg.MaxStaffPerRoom <= 0 {
		cfg.MaxStaffPerRoom = 3
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:    st,
		cfg:      cfg,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the current operating day.
func (e *Engine) Today() string {
	return parse.OperatingDay(e.now(), e.cfg.Location)
}

// Capacity is the maximum number of staff a room holds per day.
func (e *Engine) Capacity() int {
	return e.cfg.MaxStaffPerRoom
}

// resolveDate normalises an optional client date, defaulting to today.
func (e *Engine) resolveDate(raw string) (string, error) {
	if raw == "" {
		return e.Today(), nil
	}
	d, err := parse.WorkDate(raw)
	if err != nil {
		return "", store.InvalidInput("work_date: %v", err)
	}
	return d, nil
}

func (e *Engine) notify(stationID int64, reason string) {
	if stationID <= 0 {
		return
	}
	e.notifier.Notify(stationID, reason)
}

// notifyRoom looks up the room's station and notifies it. Lookup failures are
// logged; the mutation has already committed.
func (e *Engine) notifyRoom(ctx context.Context, roomID int64, reason string) {
	room, err := e.store.GetRoom(ctx, roomID)
	if err != nil {
		e.logger.Warn("could not resolve station for board event",
			zap.Int64("room_id", roomID), zap.String("reason", reason), zap.Error(err))
		return
	}
	e.notify(room.StationID, reason)
}

func requirePositive(field string, id int64) error {
	if id <= 0 {
		return store.InvalidInput("%s must be a positive integer", field)
	}
	return nil
}
