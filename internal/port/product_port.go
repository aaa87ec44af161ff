package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront-sync/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	SearchProducts(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error)
	ListBrands(ctx context.Context) ([]string, error)
	// ListCompatible returns products whose compatibility mentions device, case-insensitively.
	ListCompatible(ctx context.Context, device string) ([]domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
}

type ProductsAPI interface {
	Search(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Brands(ctx context.Context) ([]string, error)
	Compatible(ctx context.Context, device string) ([]domain.Product, error)
}
