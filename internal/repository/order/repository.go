package order

import (
	"context"

	"shei-hoise-api/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Order, error)
	UpdateStatusBulk(ctx context.Context, storeID string, orderIDs []string, status domain.OrderStatus) (updated []string, err error)
}
