package product

import (
	"context"

	"github.com/imnatewest/ai-fridge-app/internal/domain"
)

type Service interface {
	Lookup(ctx context.Context, barcode string) (*domain.Product, error)
}

type lookupClient interface {
	Lookup(ctx context.Context, barcode string) (*domain.Product, error)
}

type service struct {
	client lookupClient
}

func NewService(client lookupClient) Service {
	return &service{client: client}
}

func (s *service) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	return s.client.Lookup(ctx, barcode)
}
