package worker

import (
	"context"
	"time"

	"campus-market/internal/broker"
	"campus-market/internal/models"
	"campus-market/internal/snapshot"
	"campus-market/internal/state"
	"campus-market/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SnapshotWorker persists the session blob whenever the store reports a
// change, debounced so bursts of mutations produce one write. A final
// snapshot is written on shutdown, and no write happens after the context
// is cancelled beyond that flush.
type SnapshotWorker struct {
	store    *state.Store
	manager  *snapshot.Manager
	debounce time.Duration
	logger   *zap.Logger
}

// NewSnapshotWorker creates a new snapshot worker
func NewSnapshotWorker(store *state.Store, manager *snapshot.Manager, debounce time.Duration) *SnapshotWorker {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &SnapshotWorker{
		store:    store,
		manager:  manager,
		debounce: debounce,
		logger:   util.GetLogger(),
	}
}

// Start runs the persistence loop until the context is cancelled.
func (w *SnapshotWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting snapshot worker", zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			w.flush()
			w.logger.Info("Snapshot worker stopped")
			return ctx.Err()
		case <-w.store.Dirty():
			// Let a burst of mutations settle before writing.
			timer := time.NewTimer(w.debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				w.flush()
				w.logger.Info("Snapshot worker stopped")
				return ctx.Err()
			case <-timer.C:
			}
			w.persist(ctx)
		}
	}
}

func (w *SnapshotWorker) persist(ctx context.Context) {
	if err := w.manager.Save(ctx, w.store.Snapshot()); err != nil {
		w.logger.Error("Failed to persist snapshot", zap.Error(err))
	}
}

// flush writes one last snapshot with a fresh context, since the worker's
// own context is already cancelled at shutdown.
func (w *SnapshotWorker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	w.persist(ctx)
}

// NotificationWorker consumes marketplace events and turns OrderPlaced
// events into seller-facing notifications. Buyer notifications are created
// synchronously at the transition; the seller side rides the event stream.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *state.Store
	logger       *zap.Logger
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, store *state.Store) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		store:    store,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(w.handleOrderPlaced)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting notification worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	w.logger.Info("Stopping notification worker")
	return w.consumer.Close()
}

func (w *NotificationWorker) handleOrderPlaced(_ context.Context, event *models.OrderPlacedEvent) error {
	business, ok := w.store.VendorBusinessByID(event.BusinessID)
	if !ok {
		// Seeded marketplace businesses have no owner to notify.
		w.logger.Debug("No vendor business for order, seller notification skipped",
			zap.String("business_id", event.BusinessID))
		return nil
	}

	notification := models.Notification{
		ID:         uuid.New().String(),
		UserID:     business.OwnerID,
		Type:       models.NotificationOrderUpdate,
		Title:      "New order received",
		Message:    event.CustomerName + " placed an order",
		OrderID:    event.VendorOrderID,
		BusinessID: event.BusinessID,
		CreatedAt:  time.Now().UTC(),
	}
	w.store.AddNotification(notification)
	util.NotificationsCreatedTotal.WithLabelValues(notification.Type).Inc()

	w.logger.Info("Seller notified of new order",
		zap.String("vendor_order_id", event.VendorOrderID),
		zap.String("owner_id", business.OwnerID))
	return nil
}
