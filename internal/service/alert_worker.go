package service

import (
	"context"
	"sync"
	"time"

	"github.com/centavo-app/centavo-backend/internal/notify"
	"github.com/centavo-app/centavo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConnectedUserLister reports users with at least one open push connection
type ConnectedUserLister interface {
	ConnectedUsers() []uuid.UUID
}

// AlertWorker periodically recomputes alerts for connected users and pushes
// the result over the websocket hub. Danger alerts are also forwarded to the
// configured sink.
type AlertWorker struct {
	alertService *AlertService
	users        ConnectedUserLister
	publisher    websocket.EventPublisher
	sink         notify.AlertSink
	logger       zerolog.Logger
	interval     time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	mu           sync.Mutex
	running      bool
}

// DefaultAlertSweepInterval is how often alerts are recomputed when the
// config does not override it
const DefaultAlertSweepInterval = 15 * time.Minute

// NewAlertWorker creates a new alert worker
func NewAlertWorker(
	alertService *AlertService,
	users ConnectedUserLister,
	publisher websocket.EventPublisher,
	sink notify.AlertSink,
	logger zerolog.Logger,
	interval time.Duration,
) *AlertWorker {
	if interval <= 0 {
		interval = DefaultAlertSweepInterval
	}
	if sink == nil {
		sink = notify.NoOpSink{}
	}

	return &AlertWorker{
		alertService: alertService,
		users:        users,
		publisher:    publisher,
		sink:         sink,
		logger:       logger.With().Str("component", "alert_worker").Logger(),
		interval:     interval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background sweep loop
func (w *AlertWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting alert worker")
	go w.run(ctx)
}

// Stop gracefully stops the worker and waits for the loop to exit
func (w *AlertWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Alert worker stopped")
}

func (w *AlertWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep recomputes alerts for every connected user. Failures are logged per
// user and never stop the loop.
func (w *AlertWorker) Sweep(ctx context.Context) {
	start := time.Now()
	users := w.users.ConnectedUsers()

	for _, userID := range users {
		alerts, err := w.alertService.GetAlerts(ctx, userID, time.Now())
		if err != nil {
			w.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Alert sweep failed for user")
			continue
		}

		w.publisher.Publish(userID, websocket.NewEvent(websocket.EventTypeRefreshed, websocket.EntityTypeAlerts, alerts))
		w.sink.Notify(ctx, alerts)
	}

	w.logger.Debug().
		Int("users", len(users)).
		Dur("elapsed", time.Since(start)).
		Msg("Alert sweep complete")
}
