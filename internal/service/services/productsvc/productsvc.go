package productsvc

import (
	"context"

	"github.com/corray333/order-management/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/order-management/internal/dal/postgres"
	productrepo "github.com/corray333/order-management/internal/dal/repositories/product/postgres"
	"github.com/corray333/order-management/internal/service/models/product"
)

// ProductService exposes the read-only product catalog.
type ProductService struct {
	repo iproductrepo.IProductRepository
}

// option is a function that configures the ProductService.
type option func(*ProductService)

// MustNewProductService creates a new ProductService.
func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the ProductService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ProductService) {
		s.repo = productrepo.NewPostgresProductRepository(pgClient.Pool())
	}
}

// List retrieves every product ordered by id.
func (s *ProductService) List(ctx context.Context) ([]product.Product, error) {
	return s.repo.List(ctx)
}
