package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

type dueStore interface {
	ListDue(ctx context.Context, now time.Time) ([]domain.PendingReminder, error)
	Delete(ctx context.Context, notificationID string) error
}

type deviceStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Device, error)
}

type pushSender interface {
	Publish(ctx context.Context, endpointARN, title, body string, data map[string]string) error
}

// Dispatcher periodically fires due reminders as push notifications to the
// owning user's devices. Delivery is best effort with no retry: a failed
// push is logged and the reminder is still consumed, matching last-wins
// reconciliation semantics.
type Dispatcher struct {
	reminders dueStore
	devices   deviceStore
	pusher    pushSender // nil disables delivery; due rows are still drained
	interval  time.Duration
}

func NewDispatcher(reminders dueStore, devices deviceStore, pusher pushSender, interval time.Duration) *Dispatcher {
	return &Dispatcher{reminders: reminders, devices: devices, pusher: pusher, interval: interval}
}

// Run loops until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.DispatchDue(ctx, time.Now())
		}
	}
}

// DispatchDue fires every reminder whose trigger time has passed.
func (d *Dispatcher) DispatchDue(ctx context.Context, now time.Time) {
	due, err := d.reminders.ListDue(ctx, now)
	if err != nil {
		slog.Error("list due reminders failed", "err", err)
		return
	}
	for _, rem := range due {
		d.deliver(ctx, rem)
		if err := d.reminders.Delete(ctx, rem.NotificationID); err != nil {
			slog.Warn("delete fired reminder failed", "notification_id", rem.NotificationID, "err", err)
		}
	}
}

// deliver pushes one reminder to every enabled, authorized device endpoint.
func (d *Dispatcher) deliver(ctx context.Context, rem domain.PendingReminder) {
	if d.pusher == nil {
		return
	}
	devices, err := d.devices.ListByUser(ctx, rem.UserID)
	if err != nil {
		slog.Warn("list devices failed", "user_id", rem.UserID, "err", err)
		return
	}
	for _, dev := range devices {
		if !dev.Enable || dev.EndpointARN == "" || dev.Authorization != domain.AuthorizationAuthorized {
			continue
		}
		data := map[string]string{"notification_id": rem.NotificationID, "item_id": rem.ItemID}
		if err := d.pusher.Publish(ctx, dev.EndpointARN, rem.Title, rem.Body, data); err != nil {
			slog.Warn("push delivery failed", "notification_id", rem.NotificationID, "device_id", dev.DeviceID, "err", err)
		}
	}
}
