package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/wire"
)

var _ port.ProductsAPI = (*ProductsResource)(nil)

type ProductsResource struct{ c *Client }

func (r *ProductsResource) Search(ctx context.Context, params domain.SearchParams) (domain.ProductPage, error) {
	var page wire.ProductPage
	if err := r.c.do(ctx, http.MethodGet, []string{"search"}, searchQuery(params), nil, &page); err != nil {
		return domain.ProductPage{}, err
	}

	out, err := wire.ProductPageToDomain(page)
	if err != nil {
		return domain.ProductPage{}, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func (r *ProductsResource) Get(ctx context.Context, id string) (domain.Product, error) {
	var product wire.Product
	if err := r.c.do(ctx, http.MethodGet, []string{"batteries", id}, nil, nil, &product); err != nil {
		return domain.Product{}, err
	}

	out, err := wire.ProductToDomain(product)
	if err != nil {
		return domain.Product{}, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func (r *ProductsResource) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := r.c.do(ctx, http.MethodGet, []string{"brands"}, nil, nil, &brands); err != nil {
		return nil, err
	}

	return nonNilStrings(brands), nil
}

// Compatible lists the batteries that fit device.
func (r *ProductsResource) Compatible(ctx context.Context, device string) ([]domain.Product, error) {
	if strings.TrimSpace(device) == "" {
		return nil, setupError(errors.New("device is empty"))
	}

	var products []wire.Product
	if err := r.c.do(ctx, http.MethodGet, []string{"batteries", "compatible", device}, nil, nil, &products); err != nil {
		return nil, err
	}

	out, err := wire.ProductsToDomain(products)
	if err != nil {
		return nil, malformedError(http.StatusOK, err)
	}

	return out, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func searchQuery(p domain.SearchParams) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}

	set("query", p.Query)
	set("brand", p.Brand)
	set("category", p.Category)
	if p.MinPrice != nil {
		set("min_price", p.MinPrice.String())
	}
	if p.MaxPrice != nil {
		set("max_price", p.MaxPrice.String())
	}
	if p.IsFeatured != nil {
		set("is_featured", strconv.FormatBool(*p.IsFeatured))
	}
	set("sort_by", string(p.SortBy))
	set("sort_direction", string(p.SortDir))
	if p.Page > 0 {
		set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		set("per_page", strconv.Itoa(p.PerPage))
	}

	return q
}
