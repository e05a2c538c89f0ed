// Package scheduler advances placed orders through the delivery lifecycle on
// a cron cadence and notifies the originating session of each change.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/user/quickbite/internal/types"
)

// Notifier pushes a status message to the session that placed the order.
type Notifier func(sessionKey types.SessionKey, message string)

// statusStep marks the status an order reaches once enough time has passed
// since it was placed.
type statusStep struct {
	after  time.Duration
	status string
}

// Orders are promised "in 30-45 minutes"; the progression mirrors that.
var statusSteps = []statusStep{
	{5 * time.Minute, types.OrderStatusPreparing},
	{20 * time.Minute, types.OrderStatusOutForDelivery},
	{45 * time.Minute, types.OrderStatusDelivered},
}

// Scheduler ticks once a minute, moving each open order to the status its
// age calls for and persisting the change.
type Scheduler struct {
	orders types.OrderStore
	notify Notifier
	cron   *cron.Cron
}

// New creates a Scheduler over the order store. notify may be nil when no
// outbound channel is available.
func New(orders types.OrderStore, notify Notifier) *Scheduler {
	return &Scheduler{
		orders: orders,
		notify: notify,
		cron:   cron.New(),
	}
}

// Start registers the per-minute tick and starts the cron ticker.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		s.tick(context.Background(), time.Now())
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron ticker.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// statusFor returns the status an order of the given age should carry, or ""
// when it is still freshly confirmed.
func statusFor(age time.Duration) string {
	status := ""
	for _, step := range statusSteps {
		if age >= step.after {
			status = step.status
		}
	}
	return status
}

// tick advances every order whose age has crossed a step boundary. Failed
// updates are logged and retried on the next tick.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		slog.Error("listing orders for status progression failed", "error", err)
		return
	}

	for _, order := range orders {
		if order.Status == types.OrderStatusDelivered {
			continue
		}
		next := statusFor(now.Sub(order.Timestamp))
		if next == "" || next == order.Status {
			continue
		}

		if err := s.orders.UpdateStatus(ctx, order.OrderID, next); err != nil {
			slog.Error("updating order status failed", "order_id", string(order.OrderID), "error", err)
			continue
		}
		slog.Info("order status advanced", "order_id", string(order.OrderID), "status", next)

		if s.notify != nil && order.SessionKey != "" {
			s.notify(order.SessionKey, "Your order "+string(order.OrderID)+" is now "+next+".")
		}
	}
}
