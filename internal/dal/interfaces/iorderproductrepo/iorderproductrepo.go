package iorderproductrepo

import (
	"context"
)

// IOrderProductRepository is an interface for the order-product mapping
// postgres repository.
type IOrderProductRepository interface {
	BulkInsert(ctx context.Context, orderID int64, productIDs []int64) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
	ListProductIDs(ctx context.Context, orderID int64) ([]int64, error)
}
