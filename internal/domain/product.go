package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID       int64
	Name     string
	Slug     string
	ImageURL string
}

type Product struct {
	ID                 string
	Name               string
	Brand              string
	Price              decimal.Decimal
	OriginalPrice      *decimal.Decimal
	Compatibility      string
	CapacityPercentage int
	Capacity           string
	Voltage            string
	Warranty           string
	Description        string
	Features           []string
	ImageURL           string
	IsFeatured         bool
	IsOnSale           bool
	Category           Category

	CreatedAt time.Time
}

// DiscountPercentage is zero unless the product has an original price above its price.
func (p Product) DiscountPercentage() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	off := p.OriginalPrice.Sub(p.Price)
	return off.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0)
}

type ProductPage struct {
	Items       []Product
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

type SortField string

const (
	SortByPrice              SortField = "price"
	SortByCreatedAt          SortField = "created_at"
	SortByCapacityPercentage SortField = "capacity_percentage"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SearchParams struct {
	Query      string
	Brand      string
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsFeatured *bool
	SortBy     SortField
	SortDir    SortDirection
	Page       int
	PerPage    int
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Normalized clamps paging and fills defaults.
func (p SearchParams) Normalized() SearchParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	switch p.SortBy {
	case SortByPrice, SortByCreatedAt, SortByCapacityPercentage:
	default:
		p.SortBy = SortByCreatedAt
	}
	if p.SortDir != SortAsc {
		p.SortDir = SortDesc
	}
	return p
}
