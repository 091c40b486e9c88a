package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/expiration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockItemStore struct{ mock.Mock }

func (m *mockItemStore) ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if items, _ := args.Get(0).([]domain.InventoryItem); items != nil {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReminderStore struct{ mock.Mock }

func (m *mockReminderStore) Put(ctx context.Context, r *domain.PendingReminder) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockReminderStore) ListByUser(ctx context.Context, userID string) ([]domain.PendingReminder, error) {
	args := m.Called(ctx, userID)
	if p, _ := args.Get(0).([]domain.PendingReminder); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockReminderStore) Delete(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}
func (m *mockReminderStore) ListDue(ctx context.Context, now time.Time) ([]domain.PendingReminder, error) {
	args := m.Called(ctx, now)
	if p, _ := args.Get(0).([]domain.PendingReminder); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- helpers ---

func expiring(id, name string, expiresAt time.Time) domain.InventoryItem {
	return domain.InventoryItem{ItemID: id, UserID: "u1", Name: name, ExpiresAt: &expiresAt}
}

// --- Reconcile tests ---

func TestReconcile_SchedulesExpiringAndCancelsStale(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	items := &mockItemStore{}
	reminders := &mockReminderStore{}
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		expiring("i1", "Milk", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)),
	}, nil)
	reminders.On("ListByUser", mock.Anything, "u1").Return([]domain.PendingReminder{
		{NotificationID: "item-expiration-gone", UserID: "u1", ItemID: "gone"},
	}, nil)
	reminders.On("Delete", mock.Anything, "item-expiration-gone").Return(nil)
	reminders.On("Put", mock.Anything, mock.MatchedBy(func(r *domain.PendingReminder) bool {
		return r.NotificationID == expiration.NotificationID("i1") &&
			r.UserID == "u1" && r.ItemID == "i1" && r.Title == "Milk"
	})).Return(nil)

	svc := NewService(items, reminders, &mockUserStore{}, nil)
	require.NoError(t, svc.Reconcile(context.Background(), "u1", now))

	items.AssertExpectations(t)
	reminders.AssertExpectations(t)
}

func TestReconcile_NoChanges_NoWrites(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	items := &mockItemStore{}
	reminders := &mockReminderStore{}
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{}, nil)
	reminders.On("ListByUser", mock.Anything, "u1").Return([]domain.PendingReminder{}, nil)

	svc := NewService(items, reminders, &mockUserStore{}, nil)
	require.NoError(t, svc.Reconcile(context.Background(), "u1", now))

	reminders.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	reminders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcile_ItemLoadFailure(t *testing.T) {
	items := &mockItemStore{}
	reminders := &mockReminderStore{}
	items.On("ListByUser", mock.Anything, "u1").Return(nil, errors.New("dynamo down"))

	svc := NewService(items, reminders, &mockUserStore{}, nil)
	err := svc.Reconcile(context.Background(), "u1", time.Now())
	assert.Error(t, err)
	reminders.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestReconcile_PartialFailure_ContinuesApplying(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	items := &mockItemStore{}
	reminders := &mockReminderStore{}
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		expiring("i1", "Milk", time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)),
		expiring("i2", "Eggs", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)),
	}, nil)
	reminders.On("ListByUser", mock.Anything, "u1").Return([]domain.PendingReminder{}, nil)
	reminders.On("Put", mock.Anything, mock.MatchedBy(func(r *domain.PendingReminder) bool {
		return r.ItemID == "i1"
	})).Return(errors.New("write failed"))
	reminders.On("Put", mock.Anything, mock.MatchedBy(func(r *domain.PendingReminder) bool {
		return r.ItemID == "i2"
	})).Return(nil)

	svc := NewService(items, reminders, &mockUserStore{}, nil)
	require.NoError(t, svc.Reconcile(context.Background(), "u1", now))
	reminders.AssertExpectations(t)
}

// --- SendDigest tests ---

func TestSendDigest_EmailsExpiredAndSoon(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	items := &mockItemStore{}
	users := &mockUserStore{}
	mail := &mockMailer{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		expiring("i1", "Yogurt", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)),
		expiring("i2", "Milk", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)),
	}, nil)
	mail.On("SendEmail", "alice@example.com", "Your fridge check-in", mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	svc := NewService(items, &mockReminderStore{}, users, mail)
	require.NoError(t, svc.SendDigest(context.Background(), "u1", now))
	mail.AssertExpectations(t)
}

func TestSendDigest_NothingExpiring_NoEmail(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	items := &mockItemStore{}
	users := &mockUserStore{}
	mail := &mockMailer{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	items.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		expiring("i1", "Canned beans", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	}, nil)

	svc := NewService(items, &mockReminderStore{}, users, mail)
	require.NoError(t, svc.SendDigest(context.Background(), "u1", now))
	mail.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendDigest_NotConfigured(t *testing.T) {
	svc := NewService(&mockItemStore{}, &mockReminderStore{}, &mockUserStore{}, nil)
	err := svc.SendDigest(context.Background(), "u1", time.Now())
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestDigestBody_Sections(t *testing.T) {
	p := expiration.Partition{
		Expired:      []domain.InventoryItem{{Name: "Yogurt"}},
		ExpiringSoon: []domain.InventoryItem{{Name: "Milk"}, {Name: "Eggs"}},
	}
	body := digestBody(p)
	assert.Contains(t, body, "Already expired:")
	assert.Contains(t, body, "  - Yogurt")
	assert.Contains(t, body, "Expiring within 3 days:")
	assert.Contains(t, body, "  - Milk")
	assert.Contains(t, body, "  - Eggs")
}
