package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/db"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type productRepository struct {
	q        *db.Queries
	pool     *pgxpool.Pool
	currency currency.Unit
}

// NewProduct returns a catalog repository. Saved products are priced in cur.
func NewProduct(pool *pgxpool.Pool, cur currency.Unit) (port.ProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &productRepository{
		q:        db.New(pool),
		pool:     pool,
		currency: cur,
	}, nil
}

func NewProductWithTx(tx pgx.Tx, cur currency.Unit) port.ProductRepository {
	return &productRepository{
		q:        db.New(tx),
		currency: cur,
	}
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, fmt.Errorf("id is empty")
	}

	row, err := r.q.GetProduct(ctx, id)
	if err != nil {
		if nf := notFound(err); nf != nil {
			return domain.Product{}, fmt.Errorf("product[%s]: %w", id, nf)
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductToDomain(row.Product, row.Category)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) SearchProducts(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	params = params.Normalized()

	filter := db.CountProductsParams{
		Query:      optionalText(params.Query),
		Brand:      optionalText(params.Brand),
		Category:   optionalText(params.Category),
		MinPrice:   optionalDecimal(params.MinPrice),
		MaxPrice:   optionalDecimal(params.MaxPrice),
		IsFeatured: optionalBool(params.IsFeatured),
	}

	total, err := r.q.CountProducts(ctx, filter)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.CountProducts: %w", err)
	}

	rows, err := r.q.SearchProducts(ctx, db.SearchProductsParams{
		Query:      filter.Query,
		Brand:      filter.Brand,
		Category:   filter.Category,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		IsFeatured: filter.IsFeatured,
		SortKey:    string(params.SortBy) + "_" + string(params.SortDir),
		PageSize:   int32(params.PerPage),
		PageOffset: int32((params.Page - 1) * params.PerPage),
	})
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("q.SearchProducts: %w", err)
	}

	items := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row.Product, row.Category)
		if err != nil {
			return domain.ProductPage{}, fmt.Errorf("mapProductToDomain: %w", err)
		}
		items = append(items, product)
	}

	totalItems := int(total)
	totalPages := (totalItems + params.PerPage - 1) / params.PerPage
	if totalPages < 1 {
		totalPages = 1
	}

	return domain.ProductPage{
		Items:       items,
		CurrentPage: params.Page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PerPage:     params.PerPage,
	}, nil
}

func (r *productRepository) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := r.q.ListBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListBrands: %w", err)
	}

	return nonNil(brands), nil
}

func (r *productRepository) ListCompatible(ctx context.Context, device string) ([]domain.Product, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil, fmt.Errorf("device is empty")
	}

	rows, err := r.q.ListCompatibleProducts(ctx, escapeLike(device))
	if err != nil {
		return nil, fmt.Errorf("q.ListCompatibleProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row.Product, row.Category)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// SaveProduct upserts the product and its category, keyed by product id and category slug.
func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("id is empty")
	}
	if product.Category.Slug == "" {
		return fmt.Errorf("category slug is empty")
	}
	if product.Price.IsNegative() {
		return domain.ErrInvalidAmount
	}

	features, err := json.Marshal(nonNil(product.Features))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	_, err = withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		categoryID, err := q.UpsertCategory(ctx, db.UpsertCategoryParams{
			Name:     product.Category.Name,
			Slug:     product.Category.Slug,
			ImageUrl: product.Category.ImageURL,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.UpsertCategory: %w", err)
		}

		err = q.UpsertProduct(ctx, db.UpsertProductParams{
			ID:                 product.ID,
			CategoryID:         categoryID,
			Name:               product.Name,
			Brand:              product.Brand,
			PriceAmount:        product.Price,
			OriginalAmount:     optionalDecimal(product.OriginalPrice),
			PriceCurrency:      r.currency.String(),
			Compatibility:      product.Compatibility,
			CapacityPercentage: int32(product.CapacityPercentage),
			Capacity:           product.Capacity,
			Voltage:            product.Voltage,
			Warranty:           product.Warranty,
			Description:        product.Description,
			Features:           features,
			ImageUrl:           product.ImageURL,
			IsFeatured:         product.IsFeatured,
			IsOnSale:           product.IsOnSale,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.UpsertProduct: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func mapProductToDomain(p db.Product, c db.Category) (domain.Product, error) {
	var features []string
	if err := json.Unmarshal(p.Features, &features); err != nil {
		return domain.Product{}, fmt.Errorf("features of product[%s] are not valid: %w", p.ID, err)
	}

	var originalPrice *decimal.Decimal
	if p.OriginalAmount.Valid {
		originalPrice = &p.OriginalAmount.Decimal
	}

	return domain.Product{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		Price:              p.PriceAmount,
		OriginalPrice:      originalPrice,
		Compatibility:      p.Compatibility,
		CapacityPercentage: int(p.CapacityPercentage),
		Capacity:           p.Capacity,
		Voltage:            p.Voltage,
		Warranty:           p.Warranty,
		Description:        p.Description,
		Features:           features,
		ImageURL:           p.ImageUrl,
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale,
		Category: domain.Category{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			ImageURL: c.ImageUrl,
		},
		CreatedAt: p.CreatedAt,
	}, nil
}

func optionalText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func optionalDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func optionalBool(b *bool) pgtype.Bool {
	if b == nil {
		return pgtype.Bool{}
	}
	return pgtype.Bool{Bool: *b, Valid: true}
}

// escapeLike makes device match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
