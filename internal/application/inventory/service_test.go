package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockItemStore struct{ mock.Mock }

func (m *mockItemStore) Put(ctx context.Context, item *domain.InventoryItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockItemStore) Get(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if i, _ := args.Get(0).(*domain.InventoryItem); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemStore) ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if items, _ := args.Get(0).([]domain.InventoryItem); items != nil {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockItemStore) Update(ctx context.Context, itemID string, updates map[string]interface{}) error {
	return m.Called(ctx, itemID, updates).Error(0)
}
func (m *mockItemStore) ClearExpiration(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}
func (m *mockItemStore) HardDelete(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

type mockProductLookup struct{ mock.Mock }

func (m *mockProductLookup) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReconciler struct{ mock.Mock }

func (m *mockReconciler) Reconcile(ctx context.Context, userID string, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}

func strptr(s string) *string { return &s }

// --- Create tests ---

func TestCreate_HappyPath_SyncsReminders(t *testing.T) {
	repo := &mockItemStore{}
	rec := &mockReconciler{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(i *domain.InventoryItem) bool {
		return i.UserID == "u1" && i.Name == "Milk" && i.Quantity == 1 &&
			i.ExpiresAt != nil && i.ExpiresAt.Format("2006-01-02") == "2024-01-12"
	})).Return(nil)
	rec.On("Reconcile", mock.Anything, "u1", mock.Anything).Return(nil)

	svc := NewService(repo, nil, rec)
	item, err := svc.Create(context.Background(), "u1", domain.CreateItemRequest{
		Name: "Milk", ExpiresAt: strptr("2024-01-12"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ItemID)
	repo.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestCreate_MalformedDate(t *testing.T) {
	svc := NewService(&mockItemStore{}, nil, nil)
	_, err := svc.Create(context.Background(), "u1", domain.CreateItemRequest{
		Name: "Milk", ExpiresAt: strptr("12/01/2024"),
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreate_NoExpirationDate(t *testing.T) {
	repo := &mockItemStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(i *domain.InventoryItem) bool {
		return i.ExpiresAt == nil
	})).Return(nil)

	svc := NewService(repo, nil, nil)
	item, err := svc.Create(context.Background(), "u1", domain.CreateItemRequest{Name: "Salt"})
	require.NoError(t, err)
	assert.Nil(t, item.ExpiresAt)
}

func TestCreate_BarcodePrefill(t *testing.T) {
	repo := &mockItemStore{}
	products := &mockProductLookup{}
	products.On("Lookup", mock.Anything, "3017620422003").Return(&domain.Product{
		Barcode: "3017620422003", Name: "Nutella", Category: "Spreads",
	}, nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(i *domain.InventoryItem) bool {
		return i.Name == "Nutella" && i.Category == "Spreads"
	})).Return(nil)

	svc := NewService(repo, products, nil)
	item, err := svc.Create(context.Background(), "u1", domain.CreateItemRequest{Barcode: "3017620422003"})
	require.NoError(t, err)
	assert.Equal(t, "Nutella", item.Name)
	products.AssertExpectations(t)
}

func TestCreate_NoNameNoBarcode(t *testing.T) {
	svc := NewService(&mockItemStore{}, nil, nil)
	_, err := svc.Create(context.Background(), "u1", domain.CreateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// --- ownership tests ---

func TestGet_OtherUsersItem_Forbidden(t *testing.T) {
	repo := &mockItemStore{}
	repo.On("Get", mock.Anything, "i1").Return(&domain.InventoryItem{ItemID: "i1", UserID: "u2"}, nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.Get(context.Background(), "i1", "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// --- Update tests ---

func TestUpdate_PartialFields(t *testing.T) {
	repo := &mockItemStore{}
	rec := &mockReconciler{}
	owned := &domain.InventoryItem{ItemID: "i1", UserID: "u1", Name: "Milk"}
	repo.On("Get", mock.Anything, "i1").Return(owned, nil)
	repo.On("Update", mock.Anything, "i1", map[string]interface{}{
		"quantity": 2.0, "unit": "l",
	}).Return(nil)
	rec.On("Reconcile", mock.Anything, "u1", mock.Anything).Return(nil)

	qty := 2.0
	unit := "l"
	svc := NewService(repo, nil, rec)
	_, err := svc.Update(context.Background(), "i1", "u1", domain.UpdateItemRequest{
		Quantity: &qty, Unit: &unit,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_EmptyExpiresAt_ClearsExpiration(t *testing.T) {
	repo := &mockItemStore{}
	owned := &domain.InventoryItem{ItemID: "i1", UserID: "u1", Name: "Milk"}
	repo.On("Get", mock.Anything, "i1").Return(owned, nil)
	repo.On("ClearExpiration", mock.Anything, "i1").Return(nil)

	svc := NewService(repo, nil, nil)
	_, err := svc.Update(context.Background(), "i1", "u1", domain.UpdateItemRequest{
		ExpiresAt: strptr(""),
	})
	require.NoError(t, err)
	repo.AssertCalled(t, "ClearExpiration", mock.Anything, "i1")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- Delete tests ---

func TestDelete_HardDeletesAndSyncs(t *testing.T) {
	repo := &mockItemStore{}
	rec := &mockReconciler{}
	repo.On("Get", mock.Anything, "i1").Return(&domain.InventoryItem{ItemID: "i1", UserID: "u1"}, nil)
	repo.On("HardDelete", mock.Anything, "i1").Return(nil)
	rec.On("Reconcile", mock.Anything, "u1", mock.Anything).Return(nil)

	svc := NewService(repo, nil, rec)
	require.NoError(t, svc.Delete(context.Background(), "i1", "u1"))
	repo.AssertExpectations(t)
	rec.AssertExpectations(t)
}

// --- ExpiringSummary tests ---

func TestExpiringSummary_Buckets(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)
	expired := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	soon := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockItemStore{}
	repo.On("ListByUser", mock.Anything, "u1").Return([]domain.InventoryItem{
		{ItemID: "i1", UserID: "u1", Name: "Yogurt", ExpiresAt: &expired},
		{ItemID: "i2", UserID: "u1", Name: "Milk", ExpiresAt: &soon},
		{ItemID: "i3", UserID: "u1", Name: "Beans", ExpiresAt: &later},
		{ItemID: "i4", UserID: "u1", Name: "Salt"},
	}, nil)

	svc := NewService(repo, nil, nil)
	p, err := svc.ExpiringSummary(context.Background(), "u1", now)
	require.NoError(t, err)
	require.Len(t, p.Expired, 1)
	require.Len(t, p.ExpiringSoon, 1)
	require.Len(t, p.Later, 2)
	assert.Equal(t, "Yogurt", p.Expired[0].Name)
	assert.Equal(t, "Milk", p.ExpiringSoon[0].Name)
}
