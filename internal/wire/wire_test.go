package wire_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/wire"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string][]string
	}{
		{
			name: "valid",
			in:   wire.AddCartItemRequest{ProductID: "b1", Quantity: 1},
		},
		{
			name: "json names and messages",
			in:   wire.AddCartItemRequest{Quantity: 0},
			want: map[string][]string{
				"productId": {"The productId field is required."},
				"quantity":  {"The quantity field must be at least 1."},
			},
		},
		{
			name: "upper bound",
			in:   wire.UpdateCartItemRequest{Quantity: 100},
			want: map[string][]string{"quantity": {"The quantity field must not be greater than 99."}},
		},
		{
			name: "nested fields keep their path",
			in: wire.CreateOrderRequest{
				Items:         []wire.OrderLine{{ProductID: "b1", Quantity: 0}},
				PaymentMethod: "card",
				ShippingAddress: wire.ShippingAddress{
					Street: "s", City: "c", State: "st", ZipCode: "z",
				},
			},
			want: map[string][]string{
				"items[0].quantity":       {"The items[0].quantity field must be at least 1."},
				"paymentMethod":           {"The paymentMethod field must be one of: cash_on_delivery bank_transfer mobile_money."},
				"shippingAddress.country": {"The shippingAddress.country field is required."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wire.Validate(tt.in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if diff := cmp.Diff(tt.want, wire.FieldErrors(err)); diff != "" {
				t.Errorf("FieldErrors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrorsWithoutValidationDetail(t *testing.T) {
	assert.Nil(t, wire.FieldErrors(assert.AnError))
	assert.Nil(t, wire.FieldErrors(nil))
}

func TestProductFeaturesTravelAsJSONString(t *testing.T) {
	original := decimal.RequireFromString("12.00")
	p := domain.Product{
		ID:            "b1",
		Name:          "Battery",
		Price:         decimal.RequireFromString("9.5"),
		OriginalPrice: &original,
		Features:      []string{"li-ion", `quoted "fast"`},
		Category:      domain.Category{ID: 2, Name: "Tablet", Slug: "tablet"},
	}

	out, err := wire.ProductFromDomain(p)
	require.NoError(t, err)
	assert.Equal(t, `["li-ion","quoted \"fast\""]`, out.Features)
	assert.Equal(t, "9.50", out.Price)
	require.NotNil(t, out.OriginalPrice)
	assert.Equal(t, "12.00", *out.OriginalPrice)

	back, err := wire.ProductToDomain(out)
	require.NoError(t, err)
	assert.Equal(t, p.Features, back.Features)
	assert.Equal(t, p.Category, back.Category)
	assert.True(t, p.Price.Equal(back.Price))

	out, err = wire.ProductFromDomain(domain.Product{ID: "b2", Name: "Bare"})
	require.NoError(t, err)
	assert.Equal(t, "[]", out.Features, "no features encode as an empty array")
	assert.Nil(t, out.Category)
}

func TestProductToDomainRejects(t *testing.T) {
	valid := wire.Product{ID: "b1", Name: "Battery", Price: "1.00", Features: `["a"]`}

	tests := []struct {
		name   string
		mutate func(p *wire.Product)
	}{
		{name: "missing id", mutate: func(p *wire.Product) { p.ID = "" }},
		{name: "bad price", mutate: func(p *wire.Product) { p.Price = "1,00" }},
		{name: "negative original price", mutate: func(p *wire.Product) { s := "-3"; p.OriginalPrice = &s }},
		{name: "capacity above 100", mutate: func(p *wire.Product) { p.CapacityPercentage = 101 }},
		{name: "features object", mutate: func(p *wire.Product) { p.Features = `{"a":1}` }},
		{name: "features of numbers", mutate: func(p *wire.Product) { p.Features = `[1,2]` }},
	}

	_, err := wire.ProductToDomain(valid)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := wire.ProductToDomain(p)
			assert.Error(t, err)
		})
	}
}

func TestCreateOrderRequestLines(t *testing.T) {
	lines := []domain.OrderLine{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 3}}
	addr := domain.ShippingAddress{Street: "s", City: "c", State: "st", ZipCode: "z", Country: "co"}

	req := wire.CreateOrderRequestFromLines(lines, addr, domain.PaymentBankTransfer)
	require.NoError(t, wire.Validate(req))
	assert.Equal(t, lines, req.Lines())
	assert.Equal(t, "bank_transfer", req.PaymentMethod)
	assert.Equal(t, addr, domain.ShippingAddress(req.ShippingAddress))
}
