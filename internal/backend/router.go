package backend

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultRequestTimeout = 30 * time.Second

type Repositories struct {
	Cart      port.CartRepository
	Favorites port.FavoriteRepository
	Products  port.ProductRepository
	Orders    port.OrderRepository
}

type RouterConfig struct {
	Resolve        OwnerResolver
	RequestTimeout time.Duration
}

// NewRouter serves the storefront REST API under /api. Catalog routes are
// public; cart, favorites and orders require a bearer token.
func NewRouter(repos Repositories, cfg RouterConfig, log logrus.FieldLogger) http.Handler {
	if cfg.Resolve == nil {
		cfg.Resolve = TokenAsOwner
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	cart := NewCartHandler(repos.Cart)
	favorites := NewFavoritesHandler(repos.Favorites)
	products := NewProductsHandler(repos.Products)
	orders := NewOrdersHandler(repos.Orders)

	r := chi.NewRouter()

	r.Use(requestLogger(log.WithField("component", "http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", products.Search)
		r.Get("/brands", products.Brands)
		r.Get("/batteries/compatible/{device}", products.Compatible)
		r.Get("/batteries/{id}", products.Get)

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth(cfg.Resolve))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cart.GetCart)
				r.Delete("/", cart.Clear)
				r.Post("/items", cart.AddItem)
				r.Put("/items/{productId}", cart.UpdateItem)
				r.Delete("/items/{productId}", cart.RemoveItem)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", favorites.List)
				r.Post("/", favorites.Add)
				r.Delete("/", favorites.Clear)
				r.Delete("/{productId}", favorites.Remove)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orders.List)
				r.Post("/", orders.Create)
				r.Get("/{id}", orders.Get)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "Not Found.", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed.", nil)
	})

	return otelhttp.NewHandler(r, "storefront-api")
}
