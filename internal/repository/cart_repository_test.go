package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/nikolayk812/storefront-sync/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type cartRepositorySuite struct {
	suite.Suite

	db   *database
	repo port.CartRepository
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	var err error

	suite.db, err = startDatabase(suite.T().Context())
	suite.Require().NoError(err)

	suite.repo, err = repository.NewCart(suite.db.pool)
	suite.Require().NoError(err)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	suite.db.close()
}

func (suite *cartRepositorySuite) TestAddItem() {
	defer suite.deleteAll()

	products := suite.seed(2)

	tests := []struct {
		name      string
		ownerID   string
		productID string
		quantity  int
		wantError string
		wantErrIs error
	}{
		{
			name:      "add item to cart: ok",
			ownerID:   gofakeit.UUID(),
			productID: products[0].ID,
			quantity:  2,
		},
		{
			name:      "add item with empty owner ID: error",
			ownerID:   "",
			productID: products[0].ID,
			quantity:  1,
			wantError: "ownerID is empty",
		},
		{
			name:      "add item with empty product ID: error",
			ownerID:   gofakeit.UUID(),
			productID: "",
			quantity:  1,
			wantError: "productID is empty",
		},
		{
			name:      "add item with zero quantity: error",
			ownerID:   gofakeit.UUID(),
			productID: products[1].ID,
			quantity:  0,
			wantErrIs: domain.ErrInvalidQuantity,
		},
		{
			name:      "add unknown product: not found",
			ownerID:   gofakeit.UUID(),
			productID: gofakeit.UUID(),
			quantity:  1,
			wantErrIs: port.ErrNotFound,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.AddItem(ctx, tt.ownerID, tt.productID, tt.quantity)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)

			require.Len(t, cart.Items, 1)
			assertCartItem(t, expectedLine(products[0], tt.quantity), cart.Items[0])
		})
	}
}

func (suite *cartRepositorySuite) TestAddItemMergesQuantity() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	products := suite.seed(2)
	ownerID := gofakeit.UUID()

	require.NoError(t, suite.repo.AddItem(ctx, ownerID, products[0].ID, 1))
	require.NoError(t, suite.repo.AddItem(ctx, ownerID, products[1].ID, 1))
	require.NoError(t, suite.repo.AddItem(ctx, ownerID, products[0].ID, 2))

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assertCartItem(t, expectedLine(products[0], 3), cart.Items[0])
	assertCartItem(t, expectedLine(products[1], 1), cart.Items[1])
	assert.Equal(t, 4, cart.ItemCount())
	assert.Equal(t, currency.USD, cart.Currency)

	want := products[0].Price.Mul(decimal.NewFromInt(3)).Add(products[1].Price)
	assert.True(t, want.Equal(cart.TotalPrice().Amount), "total %s, want %s", cart.TotalPrice().Amount, want)
}

func (suite *cartRepositorySuite) TestUpdateItem() {
	defer suite.deleteAll()

	products := suite.seed(1)

	tests := []struct {
		name        string
		setup       bool
		quantity    int
		wantUpdated bool
		wantErrIs   error
	}{
		{
			name:        "update existing item: ok",
			setup:       true,
			quantity:    7,
			wantUpdated: true,
		},
		{
			name:        "update missing item: not found",
			quantity:    3,
			wantUpdated: false,
		},
		{
			name:      "update to zero: error",
			setup:     true,
			quantity:  0,
			wantErrIs: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			ownerID := gofakeit.UUID()

			if tt.setup {
				require.NoError(t, suite.repo.AddItem(ctx, ownerID, products[0].ID, 1))
			}

			updated, err := suite.repo.UpdateItem(ctx, ownerID, products[0].ID, tt.quantity)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, updated)

			if tt.wantUpdated {
				cart, err := suite.repo.GetCart(ctx, ownerID)
				require.NoError(t, err)
				require.Len(t, cart.Items, 1)
				assert.Equal(t, tt.quantity, cart.Items[0].Quantity)
			}
		})
	}
}

func (suite *cartRepositorySuite) TestDeleteItem() {
	defer suite.deleteAll()

	products := suite.seed(2)

	tests := []struct {
		name        string
		ownerID     string
		productID   string
		setupItems  []string
		wantDeleted bool
		wantError   string
	}{
		{
			name:        "delete existing item: ok",
			ownerID:     gofakeit.UUID(),
			productID:   products[0].ID,
			setupItems:  []string{products[0].ID, products[1].ID},
			wantDeleted: true,
		},
		{
			name:        "delete non-existing item: not found",
			ownerID:     gofakeit.UUID(),
			productID:   products[0].ID,
			setupItems:  []string{products[1].ID},
			wantDeleted: false,
		},
		{
			name:        "delete from empty cart: not found",
			ownerID:     gofakeit.UUID(),
			productID:   products[0].ID,
			wantDeleted: false,
		},
		{
			name:      "delete with empty owner ID: error",
			ownerID:   "",
			productID: products[0].ID,
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, productID := range tt.setupItems {
				require.NoError(t, suite.repo.AddItem(ctx, tt.ownerID, productID, 1))
			}

			deleted, err := suite.repo.DeleteItem(ctx, tt.ownerID, tt.productID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			require.NoError(t, err)
			assert.False(t, cart.Contains(tt.productID))
		})
	}
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	products := suite.seed(3)

	tests := []struct {
		name       string
		ownerID    string
		setupItems []domain.Product
		wantError  string
	}{
		{
			name:       "get cart with items: ok",
			ownerID:    gofakeit.UUID(),
			setupItems: products,
		},
		{
			name:    "get empty cart: ok",
			ownerID: gofakeit.UUID(),
		},
		{
			name:      "get cart with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, p := range tt.setupItems {
				require.NoError(t, suite.repo.AddItem(ctx, tt.ownerID, p.ID, 1))
			}

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			require.Len(t, cart.Items, len(tt.setupItems))

			for i, p := range tt.setupItems {
				assertCartItem(t, expectedLine(p, 1), cart.Items[i])
			}
		})
	}
}

func (suite *cartRepositorySuite) TestClearCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	products := suite.seed(2)
	ownerID, otherID := gofakeit.UUID(), gofakeit.UUID()

	for _, p := range products {
		require.NoError(t, suite.repo.AddItem(ctx, ownerID, p.ID, 1))
		require.NoError(t, suite.repo.AddItem(ctx, otherID, p.ID, 1))
	}

	require.NoError(t, suite.repo.ClearCart(ctx, ownerID))

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	other, err := suite.repo.GetCart(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, other.Items, 2)

	require.EqualError(t, suite.repo.ClearCart(ctx, ""), "ownerID is empty")
}

func (suite *cartRepositorySuite) seed(n int) []domain.Product {
	products, err := suite.db.seedProducts(suite.T().Context(), n)
	suite.Require().NoError(err)
	return products
}

func (suite *cartRepositorySuite) deleteAll() {
	suite.NoError(suite.db.truncate(suite.T().Context()))
}

func expectedLine(p domain.Product, quantity int) domain.CartLineItem {
	return domain.CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
		Quantity:  quantity,
	}
}

func assertCartItem(t *testing.T, expected, actual domain.CartLineItem) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	// Ignore the AddedAt field in CartLineItem
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartLineItem{}, "AddedAt"),
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.AddedAt.IsZero())
}
