package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-sync/internal/backend"
	"github.com/nikolayk812/storefront-sync/internal/cache"
	"github.com/nikolayk812/storefront-sync/internal/config"
	"github.com/nikolayk812/storefront-sync/internal/migrations"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/repository"
	"github.com/nikolayk812/storefront-sync/internal/wire"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &cli.App{
		Name:  "storefront-backend",
		Usage: "reference REST backend for the storefront",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and serve the API",
				Action: func(c *cli.Context) error { return serve(c.Context, log) },
			},
			{
				Name:      "seed",
				Usage:     "upsert products from a JSON file into the catalog",
				ArgsUsage: "<products.json>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("seed expects exactly one file", 2)
					}
					return seed(c.Context, c.Args().First(), log)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.WithError(err).Fatal("storefront-backend failed")
	}
}

type deps struct {
	pool     *pgxpool.Pool
	redis    *redis.Client
	repos    backend.Repositories
	products port.ProductRepository
}

func (d deps) close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}
	d.pool.Close()
}

func connect(ctx context.Context, cfg config.Backend, log logrus.FieldLogger) (deps, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return deps{}, fmt.Errorf("pgxpool.New: %w", err)
	}
	d := deps{pool: pool}

	if err := pool.Ping(ctx); err != nil {
		d.close()
		return deps{}, fmt.Errorf("pool.Ping: %w", err)
	}

	if err := migrations.Up(pool, log); err != nil {
		d.close()
		return deps{}, fmt.Errorf("migrations.Up: %w", err)
	}

	carts, err := repository.NewCart(pool)
	if err != nil {
		d.close()
		return deps{}, fmt.Errorf("repository.NewCart: %w", err)
	}
	favorites, err := repository.NewFavorite(pool)
	if err != nil {
		d.close()
		return deps{}, fmt.Errorf("repository.NewFavorite: %w", err)
	}
	orders, err := repository.NewOrder(pool)
	if err != nil {
		d.close()
		return deps{}, fmt.Errorf("repository.NewOrder: %w", err)
	}
	products, err := repository.NewProduct(pool, cfg.Currency)
	if err != nil {
		d.close()
		return deps{}, fmt.Errorf("repository.NewProduct: %w", err)
	}

	if cfg.RedisAddr != "" {
		d.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := d.redis.Ping(ctx).Err(); err != nil {
			log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable, product cache will fall back to postgres")
		}
		products = cache.NewProductRepository(products, cache.NewRedisCache(d.redis, cfg.ProductCacheTTL), log)
	}

	d.products = products
	d.repos = backend.Repositories{
		Cart:      carts,
		Favorites: favorites,
		Products:  products,
		Orders:    orders,
	}
	return d, nil
}

func serve(ctx context.Context, log *logrus.Logger) error {
	cfg, err := config.LoadBackend(nil)
	if err != nil {
		return fmt.Errorf("config.LoadBackend: %w", err)
	}
	log.SetLevel(cfg.LogLevel)

	d, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           backend.NewRouter(d.repos, backend.RouterConfig{}, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}
	return nil
}

func seed(ctx context.Context, path string, log *logrus.Logger) error {
	cfg, err := config.LoadBackend(nil)
	if err != nil {
		return fmt.Errorf("config.LoadBackend: %w", err)
	}
	log.SetLevel(cfg.LogLevel)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	var products []wire.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("json.Unmarshal[%s]: %w", path, err)
	}

	d, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	for i, p := range products {
		product, err := wire.ProductToDomain(p)
		if err != nil {
			return fmt.Errorf("products[%d]: %w", i, err)
		}
		if err := d.products.SaveProduct(ctx, product); err != nil {
			return fmt.Errorf("SaveProduct[%s]: %w", product.ID, err)
		}
	}

	log.WithField("count", len(products)).Info("catalog seeded")
	return nil
}
