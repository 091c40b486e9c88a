// Package photo manages item photos stored in S3. Each item carries at most
// one photo; uploading again replaces the previous object reference.
package photo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/id"
)

const presignTTL = 15 * time.Minute

type Service interface {
	Upload(ctx context.Context, itemID, userID string, r io.Reader, contentType string) (*domain.InventoryItem, error)
	// URL returns a short-lived presigned link to the item's photo.
	URL(ctx context.Context, itemID, userID string) (string, error)
	Delete(ctx context.Context, itemID, userID string) error
}

type itemStore interface {
	Get(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	Update(ctx context.Context, itemID string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	items   itemStore
	objects objectStore
}

func NewService(items itemStore, objects objectStore) Service {
	return &service{items: items, objects: objects}
}

func (s *service) Upload(ctx context.Context, itemID, userID string, r io.Reader, contentType string) (*domain.InventoryItem, error) {
	item, err := s.getOwned(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("items/%s/%s", itemID, id.New())
	if err := s.objects.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	if item.PhotoKey != "" {
		// Old object is replaced, not orphaned.
		_ = s.objects.Delete(ctx, item.PhotoKey)
	}
	if err := s.items.Update(ctx, itemID, map[string]interface{}{"photo_key": key}); err != nil {
		return nil, err
	}
	item.PhotoKey = key
	return item, nil
}

func (s *service) URL(ctx context.Context, itemID, userID string) (string, error) {
	item, err := s.getOwned(ctx, itemID, userID)
	if err != nil {
		return "", err
	}
	if item.PhotoKey == "" {
		return "", fmt.Errorf("item has no photo: %w", domain.ErrNotFound)
	}
	return s.objects.PresignedURL(ctx, item.PhotoKey, presignTTL)
}

func (s *service) Delete(ctx context.Context, itemID, userID string) error {
	item, err := s.getOwned(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if item.PhotoKey == "" {
		return nil
	}
	if err := s.objects.Delete(ctx, item.PhotoKey); err != nil {
		return err
	}
	return s.items.Update(ctx, itemID, map[string]interface{}{"photo_key": ""})
}

func (s *service) getOwned(ctx context.Context, itemID, userID string) (*domain.InventoryItem, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("item belongs to another user: %w", domain.ErrForbidden)
	}
	return item, nil
}
