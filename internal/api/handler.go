package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"station-board-backend/internal/assignment"
	"station-board-backend/internal/store"
)

// Resetter runs the day-boundary cleanup on demand.
type Resetter interface {
	RunOnce(ctx context.Context) (store.ResetCounts, error)
	Today() string
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine   *assignment.Engine
	store    store.Store
	resetter Resetter
	webpush  *webpush.Options
	logger   *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(engine *assignment.Engine, s store.Store, resetter Resetter, webpushOptions *webpush.Options, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:   engine,
		store:    s,
		resetter: resetter,
		webpush:  webpushOptions,
		logger:   logger,
	}
}
