package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldPlatform      = "platform"
	fieldPushToken     = "push_token"
	fieldEndpointARN   = "endpoint_arn"
	fieldAuthorization = "authorization"
	fieldAppVersion    = "app_version"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Device, error)
	Get(ctx context.Context, deviceID, userID string) (*domain.Device, error)
	// RegisterPush upserts the device identified by its client UUID with the
	// current push token and notification authorization state, creating an
	// SNS platform endpoint when a token is present.
	RegisterPush(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.Device, error)
	Delete(ctx context.Context, deviceID, userID string) error
}

type deviceStore interface {
	GetByUUID(ctx context.Context, uuid string) (*domain.Device, error)
	Put(ctx context.Context, d *domain.Device) error
	ListByUser(ctx context.Context, userID string) ([]domain.Device, error)
	Get(ctx context.Context, deviceID string) (*domain.Device, error)
	Update(ctx context.Context, deviceID string, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, deviceID string) error
}

type endpointRegistrar interface {
	RegisterEndpoint(ctx context.Context, platform, token string) (string, error)
}

type service struct {
	repo   deviceStore
	pusher endpointRegistrar // nil when push delivery is not configured
}

func NewService(repo deviceStore, pusher endpointRegistrar) Service {
	return &service{repo: repo, pusher: pusher}
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Device, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, deviceID, userID string) (*domain.Device, error) {
	d, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, fmt.Errorf("device belongs to another user: %w", domain.ErrForbidden)
	}
	return d, nil
}

func (s *service) RegisterPush(ctx context.Context, userID string, req domain.RegisterDeviceRequest) (*domain.Device, error) {
	d, err := s.repo.GetByUUID(ctx, req.UUID)
	if err != nil {
		now := time.Now().UTC()
		d = &domain.Device{
			DeviceID:      id.New(),
			UUID:          req.UUID,
			UserID:        userID,
			Platform:      req.Platform,
			Authorization: domain.AuthorizationNotDetermined,
			AppVersion:    req.AppVersion,
			Enable:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.Put(ctx, d); err != nil {
			return nil, err
		}
	} else if d.UserID != userID {
		return nil, fmt.Errorf("device belongs to another user: %w", domain.ErrForbidden)
	}

	updates := map[string]interface{}{
		fieldPlatform: req.Platform,
	}
	if req.AppVersion != "" {
		updates[fieldAppVersion] = req.AppVersion
	}
	if req.Authorization != nil {
		updates[fieldAuthorization] = *req.Authorization
	}
	if req.PushToken != nil && *req.PushToken != "" {
		updates[fieldPushToken] = *req.PushToken
		if s.pusher != nil {
			arn, err := s.pusher.RegisterEndpoint(ctx, req.Platform, *req.PushToken)
			if err != nil {
				// Token is stored anyway; delivery stays off until registration succeeds.
				slog.Warn("push endpoint registration failed", "device_id", d.DeviceID, "err", err)
			} else {
				updates[fieldEndpointARN] = arn
			}
		}
	}
	if err := s.repo.Update(ctx, d.DeviceID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, d.DeviceID)
}

func (s *service) Delete(ctx context.Context, deviceID, userID string) error {
	d, err := s.repo.Get(ctx, deviceID)
	if err != nil {
		return err
	}
	if d.UserID != userID {
		return fmt.Errorf("device belongs to another user: %w", domain.ErrForbidden)
	}
	return s.repo.SoftDelete(ctx, deviceID)
}
