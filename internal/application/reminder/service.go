// Package reminder applies the pure expiration reconciliation to the stored
// pending-reminder set and delivers due reminders to the user's devices.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/expiration"
)

type Service interface {
	// Reconcile loads the user's inventory snapshot and pending reminders,
	// computes the diff, and applies it. Serial per user; last call wins.
	Reconcile(ctx context.Context, userID string, now time.Time) error
	// ListPending returns the user's currently scheduled reminders.
	ListPending(ctx context.Context, userID string) ([]domain.PendingReminder, error)
	// SendDigest emails the user a summary of expired and expiring items.
	SendDigest(ctx context.Context, userID string, now time.Time) error
}

type itemStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

type reminderStore interface {
	Put(ctx context.Context, r *domain.PendingReminder) error
	ListByUser(ctx context.Context, userID string) ([]domain.PendingReminder, error)
	Delete(ctx context.Context, notificationID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type service struct {
	items     itemStore
	reminders reminderStore
	users     userStore
	mail      mailer // nil disables digests
}

func NewService(items itemStore, reminders reminderStore, users userStore, mail mailer) Service {
	return &service{items: items, reminders: reminders, users: users, mail: mail}
}

func (s *service) Reconcile(ctx context.Context, userID string, now time.Time) error {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	pending, err := s.reminders.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load pending reminders: %w", err)
	}
	pendingIDs := make([]string, 0, len(pending))
	for _, p := range pending {
		pendingIDs = append(pendingIDs, p.NotificationID)
	}

	diff := expiration.Reconcile(items, pendingIDs, now)

	// Apply the diff log-and-continue: a failed call leaves a stale row that
	// the next reconciliation pass repairs.
	for _, nid := range diff.ToCancel {
		if err := s.reminders.Delete(ctx, nid); err != nil {
			slog.Warn("cancel reminder failed", "notification_id", nid, "err", err)
		}
	}
	for _, req := range diff.ToSchedule {
		rem := &domain.PendingReminder{
			NotificationID: req.ID,
			UserID:         userID,
			ItemID:         req.ItemID,
			Title:          req.Title,
			Body:           req.Body,
			TriggerAt:      req.TriggerAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.reminders.Put(ctx, rem); err != nil {
			slog.Warn("schedule reminder failed", "notification_id", req.ID, "err", err)
		}
	}
	return nil
}

func (s *service) ListPending(ctx context.Context, userID string) ([]domain.PendingReminder, error) {
	return s.reminders.ListByUser(ctx, userID)
}

func (s *service) SendDigest(ctx context.Context, userID string, now time.Time) error {
	if s.mail == nil {
		return fmt.Errorf("email digests not configured: %w", domain.ErrBadRequest)
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	p := expiration.PartitionItems(items, now)
	if len(p.Expired) == 0 && len(p.ExpiringSoon) == 0 {
		return nil // nothing worth a digest
	}
	return s.mail.SendEmail(u.Email, "Your fridge check-in", digestBody(p))
}

func digestBody(p expiration.Partition) string {
	var b strings.Builder
	if len(p.Expired) > 0 {
		b.WriteString("Already expired:\n")
		for _, item := range p.Expired {
			fmt.Fprintf(&b, "  - %s\n", item.Name)
		}
	}
	if len(p.ExpiringSoon) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Expiring within 3 days:\n")
		for _, item := range p.ExpiringSoon {
			fmt.Fprintf(&b, "  - %s\n", item.Name)
		}
	}
	return b.String()
}
