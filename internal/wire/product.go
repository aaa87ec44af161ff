package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

// Product mirrors the backend's battery resource. Features is a JSON-encoded
// array of strings carried inside a string field.
type Product struct {
	ID                 string    `json:"id" validate:"required"`
	Name               string    `json:"name" validate:"required"`
	Brand              string    `json:"brand"`
	Price              string    `json:"price" validate:"required"`
	OriginalPrice      *string   `json:"original_price,omitempty"`
	Compatibility      string    `json:"compatibility"`
	CapacityPercentage int       `json:"capacity_percentage" validate:"gte=0,lte=100"`
	Capacity           string    `json:"capacity"`
	Voltage            string    `json:"voltage"`
	Warranty           string    `json:"warranty"`
	Description        string    `json:"description"`
	Features           string    `json:"features"`
	ImageURL           string    `json:"image_url"`
	IsFeatured         bool      `json:"is_featured"`
	IsOnSale           bool      `json:"is_on_sale"`
	CreatedAt          time.Time `json:"created_at"`
	Category           *Category `json:"category,omitempty"`
}

type ProductPage struct {
	Data        []Product `json:"data"`
	CurrentPage int       `json:"current_page" validate:"gte=1"`
	TotalPages  int       `json:"total_pages" validate:"gte=0"`
	TotalItems  int       `json:"total_items" validate:"gte=0"`
	PerPage     int       `json:"per_page" validate:"gte=1"`
}

func ProductFromDomain(p domain.Product) (Product, error) {
	features, err := json.Marshal(nonNil(p.Features))
	if err != nil {
		return Product{}, fmt.Errorf("json.Marshal features: %w", err)
	}

	out := Product{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		Price:              p.Price.StringFixed(2),
		Compatibility:      p.Compatibility,
		CapacityPercentage: p.CapacityPercentage,
		Capacity:           p.Capacity,
		Voltage:            p.Voltage,
		Warranty:           p.Warranty,
		Description:        p.Description,
		Features:           string(features),
		ImageURL:           p.ImageURL,
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale,
		CreatedAt:          p.CreatedAt,
	}

	if p.OriginalPrice != nil {
		s := p.OriginalPrice.StringFixed(2)
		out.OriginalPrice = &s
	}

	if p.Category.ID != 0 {
		out.Category = &Category{
			ID:       p.Category.ID,
			Name:     p.Category.Name,
			Slug:     p.Category.Slug,
			ImageURL: p.Category.ImageURL,
		}
	}

	return out, nil
}

func ProductToDomain(p Product) (domain.Product, error) {
	if err := Validate(p); err != nil {
		return domain.Product{}, err
	}

	price, err := domain.ParseAmount(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}

	var originalPrice *decimal.Decimal
	if p.OriginalPrice != nil && *p.OriginalPrice != "" {
		op, err := domain.ParseAmount(*p.OriginalPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("original_price: %w", err)
		}
		originalPrice = &op
	}

	features, err := parseFeatures(p.Features)
	if err != nil {
		return domain.Product{}, fmt.Errorf("features: %w", err)
	}

	out := domain.Product{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		Price:              price,
		OriginalPrice:      originalPrice,
		Compatibility:      p.Compatibility,
		CapacityPercentage: p.CapacityPercentage,
		Capacity:           p.Capacity,
		Voltage:            p.Voltage,
		Warranty:           p.Warranty,
		Description:        p.Description,
		Features:           features,
		ImageURL:           p.ImageURL,
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale,
		CreatedAt:          p.CreatedAt,
	}

	if p.Category != nil {
		out.Category = domain.Category{
			ID:       p.Category.ID,
			Name:     p.Category.Name,
			Slug:     p.Category.Slug,
			ImageURL: p.Category.ImageURL,
		}
	}

	return out, nil
}

func ProductsToDomain(products []Product) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(products))
	for i, p := range products {
		item, err := ProductToDomain(p)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func ProductsFromDomain(products []domain.Product) ([]Product, error) {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		item, err := ProductFromDomain(p)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func ProductPageFromDomain(page domain.ProductPage) (ProductPage, error) {
	data, err := ProductsFromDomain(page.Items)
	if err != nil {
		return ProductPage{}, err
	}

	return ProductPage{
		Data:        data,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		PerPage:     page.PerPage,
	}, nil
}

func ProductPageToDomain(page ProductPage) (domain.ProductPage, error) {
	if err := Validate(page); err != nil {
		return domain.ProductPage{}, err
	}

	items, err := ProductsToDomain(page.Data)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("data%w", err)
	}

	return domain.ProductPage{
		Items:       items,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		PerPage:     page.PerPage,
	}, nil
}

// parseFeatures decodes the JSON-encoded features string. An empty string means no features.
func parseFeatures(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	var features []string
	if err := json.Unmarshal([]byte(s), &features); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return features, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
