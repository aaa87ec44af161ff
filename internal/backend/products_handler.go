package backend

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct {
	repo port.ProductRepository
}

func NewProductsHandler(repo port.ProductRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// searchQuery holds the raw query string of GET /search.
type searchQuery struct {
	Query         string `json:"query" validate:"max=100"`
	Brand         string `json:"brand" validate:"max=100"`
	Category      string `json:"category" validate:"max=100"`
	MinPrice      string `json:"min_price" validate:"omitempty,numeric"`
	MaxPrice      string `json:"max_price" validate:"omitempty,numeric"`
	IsFeatured    string `json:"is_featured" validate:"omitempty,oneof=true false 1 0"`
	SortBy        string `json:"sort_by" validate:"omitempty,oneof=price created_at capacity_percentage"`
	SortDirection string `json:"sort_direction" validate:"omitempty,oneof=asc desc"`
	Page          string `json:"page" validate:"omitempty,number"`
	PerPage       string `json:"per_page" validate:"omitempty,number"`
}

func (h *ProductsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := readSearchQuery(r.URL.Query())
	if err := wire.Validate(q); err != nil {
		respondValidation(w, r, err)
		return
	}

	params, fieldErrors := q.params()
	if fieldErrors != nil {
		respondFieldErrors(w, r, fieldErrors)
		return
	}

	page, err := h.repo.SearchProducts(r.Context(), params)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	out, err := wire.ProductPageFromDomain(page)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	respondJSON(w, r, http.StatusOK, out)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err, "Battery not found.")
		return
	}

	out, err := wire.ProductFromDomain(product)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	respondJSON(w, r, http.StatusOK, out)
}

func (h *ProductsHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.repo.ListBrands(r.Context())
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	respondJSON(w, r, http.StatusOK, brands)
}

type compatibleQuery struct {
	Device string `json:"device" validate:"required,max=100"`
}

func (h *ProductsHandler) Compatible(w http.ResponseWriter, r *http.Request) {
	q := compatibleQuery{Device: strings.TrimSpace(chi.URLParam(r, "device"))}
	if err := wire.Validate(q); err != nil {
		respondValidation(w, r, err)
		return
	}

	products, err := h.repo.ListCompatible(r.Context(), q.Device)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	out, err := wire.ProductsFromDomain(products)
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	respondJSON(w, r, http.StatusOK, out)
}

func readSearchQuery(v url.Values) searchQuery {
	return searchQuery{
		Query:         v.Get("query"),
		Brand:         v.Get("brand"),
		Category:      v.Get("category"),
		MinPrice:      v.Get("min_price"),
		MaxPrice:      v.Get("max_price"),
		IsFeatured:    v.Get("is_featured"),
		SortBy:        v.Get("sort_by"),
		SortDirection: v.Get("sort_direction"),
		Page:          v.Get("page"),
		PerPage:       v.Get("per_page"),
	}
}

// params converts an already validated query. Ranges that only make sense
// together are checked here.
func (q searchQuery) params() (domain.SearchParams, map[string][]string) {
	p := domain.SearchParams{
		Query:    q.Query,
		Brand:    q.Brand,
		Category: q.Category,
		SortBy:   domain.SortField(q.SortBy),
		SortDir:  domain.SortDirection(q.SortDirection),
	}

	if q.MinPrice != "" {
		d, err := decimal.NewFromString(q.MinPrice)
		if err != nil || d.IsNegative() {
			return p, fieldError("min_price", "The min_price field must be at least 0.")
		}
		p.MinPrice = &d
	}
	if q.MaxPrice != "" {
		d, err := decimal.NewFromString(q.MaxPrice)
		if err != nil || d.IsNegative() {
			return p, fieldError("max_price", "The max_price field must be at least 0.")
		}
		p.MaxPrice = &d
	}
	if p.MinPrice != nil && p.MaxPrice != nil && p.MaxPrice.LessThan(*p.MinPrice) {
		return p, fieldError("max_price", "The max_price field must be greater than or equal to %s.", p.MinPrice)
	}

	if q.IsFeatured != "" {
		featured, _ := strconv.ParseBool(q.IsFeatured)
		p.IsFeatured = &featured
	}

	p.Page, _ = strconv.Atoi(q.Page)
	p.PerPage, _ = strconv.Atoi(q.PerPage)
	if p.PerPage > domain.MaxPerPage {
		return p, fieldError("per_page", "The per_page field must not be greater than %d.", domain.MaxPerPage)
	}

	return p.Normalized(), nil
}
