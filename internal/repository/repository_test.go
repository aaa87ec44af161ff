package repository_test

import (
	"context"
	"fmt"
	"io"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/migrations"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// database is a migrated postgres container shared by one suite.
type database struct {
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	products  port.ProductRepository
}

func startDatabase(ctx context.Context) (*database, error) {
	container, connStr, err := startPostgres(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	if err := migrations.Up(pool, log); err != nil {
		return nil, fmt.Errorf("migrations.Up: %w", err)
	}

	products, err := repository.NewProduct(pool, currency.USD)
	if err != nil {
		return nil, fmt.Errorf("repository.NewProduct: %w", err)
	}

	return &database{
		container: container,
		pool:      pool,
		products:  products,
	}, nil
}

func (d *database) close() {
	if d == nil {
		return
	}
	if d.pool != nil {
		d.pool.Close()
	}
	if d.container != nil {
		_ = testcontainers.TerminateContainer(d.container)
	}
}

func (d *database) truncate(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, "TRUNCATE TABLE order_items, orders, favorites, cart_items, products, categories CASCADE")
	return err
}

// seedProducts saves n random products and returns them in creation order.
func (d *database) seedProducts(ctx context.Context, n int) ([]domain.Product, error) {
	products := make([]domain.Product, 0, n)
	for range n {
		p := randomProduct()
		if err := d.products.SaveProduct(ctx, p); err != nil {
			return nil, fmt.Errorf("SaveProduct: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:                 gofakeit.UUID(),
		Name:               gofakeit.ProductName(),
		Brand:              gofakeit.RandomString([]string{"Apple", "Samsung", "Xiaomi"}),
		Price:              randomPrice(),
		Compatibility:      gofakeit.Phone(),
		CapacityPercentage: gofakeit.IntRange(70, 100),
		Capacity:           fmt.Sprintf("%d mAh", gofakeit.IntRange(2000, 5000)),
		Voltage:            "3.85V",
		Warranty:           "6 months",
		Description:        gofakeit.Sentence(8),
		Features:           []string{gofakeit.Word(), gofakeit.Word()},
		ImageURL:           gofakeit.URL(),
		Category: domain.Category{
			Name: "Phone batteries",
			Slug: "phone-batteries",
		},
	}
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)
}
