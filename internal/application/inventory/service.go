package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/expiration"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName       = "name"
	fieldCategory   = "category"
	fieldLocationID = "location_id"
	fieldQuantity   = "quantity"
	fieldUnit       = "unit"
	fieldExpiresAt  = "expires_at"
	fieldNotes      = "notes"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateItemRequest) (*domain.InventoryItem, error)
	Get(ctx context.Context, itemID, userID string) (*domain.InventoryItem, error)
	List(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	Update(ctx context.Context, itemID, userID string, req domain.UpdateItemRequest) (*domain.InventoryItem, error)
	Delete(ctx context.Context, itemID, userID string) error
	// ExpiringSummary buckets the user's inventory by expiration distance.
	ExpiringSummary(ctx context.Context, userID string, now time.Time) (*expiration.Partition, error)
}

type itemStore interface {
	Put(ctx context.Context, item *domain.InventoryItem) error
	Get(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	Update(ctx context.Context, itemID string, updates map[string]interface{}) error
	ClearExpiration(ctx context.Context, itemID string) error
	HardDelete(ctx context.Context, itemID string) error
}

type productLookup interface {
	Lookup(ctx context.Context, barcode string) (*domain.Product, error)
}

// reconciler re-syncs a user's pending reminders after inventory mutations.
type reconciler interface {
	Reconcile(ctx context.Context, userID string, now time.Time) error
}

type service struct {
	repo      itemStore
	products  productLookup // nil disables barcode prefill
	reminders reconciler    // nil disables reminder sync
}

func NewService(repo itemStore, products productLookup, reminders reconciler) Service {
	return &service{repo: repo, products: products, reminders: reminders}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateItemRequest) (*domain.InventoryItem, error) {
	expiresAt, err := parseDate(req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	item := &domain.InventoryItem{
		ItemID:     id.New(),
		UserID:     userID,
		Name:       req.Name,
		Barcode:    req.Barcode,
		Category:   req.Category,
		LocationID: req.LocationID,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		ExpiresAt:  expiresAt,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Name == "" && item.Barcode != "" && s.products != nil {
		p, err := s.products.Lookup(ctx, item.Barcode)
		if err != nil {
			return nil, fmt.Errorf("barcode lookup failed: %w", err)
		}
		item.Name = p.Name
		if item.Category == "" {
			item.Category = p.Category
		}
	}
	if item.Name == "" {
		return nil, fmt.Errorf("item name required: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Put(ctx, item); err != nil {
		return nil, err
	}
	s.syncReminders(ctx, userID)
	return item, nil
}

func (s *service) Get(ctx context.Context, itemID, userID string) (*domain.InventoryItem, error) {
	return s.getOwned(ctx, itemID, userID)
}

func (s *service) List(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, itemID, userID string, req domain.UpdateItemRequest) (*domain.InventoryItem, error) {
	if _, err := s.getOwned(ctx, itemID, userID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.LocationID != nil {
		updates[fieldLocationID] = *req.LocationID
	}
	if req.Quantity != nil {
		updates[fieldQuantity] = *req.Quantity
	}
	if req.Unit != nil {
		updates[fieldUnit] = *req.Unit
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	clearExpiration := false
	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			clearExpiration = true
		} else {
			t, err := parseDate(req.ExpiresAt)
			if err != nil {
				return nil, err
			}
			updates[fieldExpiresAt] = t
		}
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, itemID, updates); err != nil {
			return nil, err
		}
	}
	if clearExpiration {
		if err := s.repo.ClearExpiration(ctx, itemID); err != nil {
			return nil, err
		}
	}
	s.syncReminders(ctx, userID)
	return s.repo.Get(ctx, itemID)
}

func (s *service) Delete(ctx context.Context, itemID, userID string) error {
	if _, err := s.getOwned(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.repo.HardDelete(ctx, itemID); err != nil {
		return err
	}
	s.syncReminders(ctx, userID)
	return nil
}

func (s *service) ExpiringSummary(ctx context.Context, userID string, now time.Time) (*expiration.Partition, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := expiration.PartitionItems(items, now)
	return &p, nil
}

func (s *service) getOwned(ctx context.Context, itemID, userID string) (*domain.InventoryItem, error) {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("item belongs to another user: %w", domain.ErrForbidden)
	}
	return item, nil
}

// syncReminders reconciles pending reminders after a mutation. Failures are
// logged, never surfaced: the next mutation or dispatch pass will catch up.
func (s *service) syncReminders(ctx context.Context, userID string) {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.Reconcile(ctx, userID, time.Now()); err != nil {
		slog.Warn("reminder reconciliation failed", "user_id", userID, "err", err)
	}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("expires_at must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return &t, nil
}
