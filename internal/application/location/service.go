package location

import (
	"context"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
	"github.com/imnatewest/ai-fridge-app/internal/pkg/id"
)

// DynamoDB attribute name used in partial update maps.
const fieldName = "name"

type Service interface {
	List(ctx context.Context) ([]domain.Location, error)
	Get(ctx context.Context, locationID string) (*domain.Location, error)
	Create(ctx context.Context, input domain.LocationInput) (*domain.Location, error)
	Update(ctx context.Context, locationID string, input domain.LocationInput) (*domain.Location, error)
	Delete(ctx context.Context, locationID string) error // hard delete
}

type locationStore interface {
	Scan(ctx context.Context) ([]domain.Location, error)
	Get(ctx context.Context, locationID string) (*domain.Location, error)
	Put(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, locationID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, locationID string) error
}

type service struct {
	repo locationStore
}

func NewService(repo locationStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Location, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, locationID string) (*domain.Location, error) {
	return s.repo.Get(ctx, locationID)
}

func (s *service) Create(ctx context.Context, input domain.LocationInput) (*domain.Location, error) {
	l := &domain.Location{
		LocationID: id.New(),
		Name:       input.Name,
	}
	if err := s.repo.Put(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, locationID string, input domain.LocationInput) (*domain.Location, error) {
	if err := s.repo.Update(ctx, locationID, map[string]interface{}{fieldName: input.Name}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, locationID)
}

func (s *service) Delete(ctx context.Context, locationID string) error {
	return s.repo.HardDelete(ctx, locationID)
}
