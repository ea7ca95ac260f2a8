package iorderrepo

import (
	"context"

	"github.com/corray333/order-management/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, description string) (*order.Order, error)
	QueryWithCounts(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateDescription(ctx context.Context, id int64, description string) (int64, error)
	Delete(ctx context.Context, id int64) (*order.Order, error)
}
