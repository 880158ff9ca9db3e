package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"station-board-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Event is a change on one station's board.
type Event struct {
	StationID int64
	Reason    string
}

// Message is the push payload a display board receives.
type Message struct {
	StationID   int64  `json:"station_id"`
	StationName string `json:"station_name"`
	Reason      string `json:"reason"`
	Text        string `json:"text"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Event
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool. The queue holds a few events per
// worker; Notify drops events when it is full.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size*16),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.logger.With(zap.Int("worker", id))
	log.Debug("notification worker started")
	for {
		select {
		case ev := <-wp.jobs:
			wp.sendNotificationsForStation(ctx, ev)
		case <-ctx.Done():
			log.Debug("notification worker shutting down")
			return
		}
	}
}

// Notify queues a station event without blocking the caller.
func (wp *WorkerPool) Notify(stationID int64, reason string) {
	select {
	case wp.jobs <- Event{StationID: stationID, Reason: reason}:
	default:
		wp.logger.Warn("notification queue full, dropping event",
			zap.Int64("station_id", stationID), zap.String("reason", reason))
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

// sendNotificationsForStation pushes ev to every board following the station.
func (wp *WorkerPool) sendNotificationsForStation(ctx context.Context, ev Event) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_station_mapping ssm ON ssm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("ssm.station_id = ?", ev.StationID).
		Find(&subscriptions).Error
	if err != nil {
		wp.logger.Error("failed to load subscriptions", zap.Int64("station_id", ev.StationID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := fmt.Sprintf("%d", ev.StationID)
	var station model.Station
	if err := wp.db.WithContext(ctx).Select("name").First(&station, ev.StationID).Error; err != nil {
		wp.logger.Warn("failed to load station name", zap.Int64("station_id", ev.StationID), zap.Error(err))
	} else if station.Name != "" {
		label = station.Name
	}

	payload, err := json.Marshal(Message{
		StationID:   ev.StationID,
		StationName: label,
		Reason:      ev.Reason,
		Text:        fmt.Sprintf("Station %s board updated", label),
	})
	if err != nil {
		wp.logger.Error("failed to encode push payload", zap.Error(err))
		return
	}

	wp.logger.Debug("sending board notifications",
		zap.Int64("station_id", ev.StationID), zap.Int("subscriptions", len(subscriptions)))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Warn("push send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("push subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		err := wp.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM subscription_station_mapping WHERE push_subscription_endpoint = ?", sub.Endpoint).Error; err != nil {
				return err
			}
			return tx.Delete(&sub).Error
		})
		if err != nil {
			wp.logger.Warn("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
