package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	"github.com/TheMiningKing/crypto-shopping-cart/pkg/currency"
)

var shirt = domain.Product{
	ID:    "5a7e0f3b1c9d440000a1b2c3",
	Name:  "Men's Mining T",
	Image: "man-shirt.jpg",
	Prices: []domain.ProductPrice{
		{Currency: "ETH", UnitAmount: 51990000, WalletID: "w-eth"},
		{Currency: "BTC", UnitAmount: 378000, WalletID: "w-btc"},
	},
}

var sticker = domain.Product{
	ID:    "5a7e0f3b1c9d440000a1b2c4",
	Name:  "Mining Sticker",
	Image: "sticker.jpg",
	Prices: []domain.ProductPrice{
		{Currency: "ETH", UnitAmount: 1000000, WalletID: "w-eth"},
	},
}

func newLedger() *Ledger {
	return NewLedger(currency.Display)
}

func TestNewCart(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.Totals)
	assert.Equal(t, "ETH", cart.PreferredCurrency)
	assert.Nil(t, cart.Order)
}

func TestAddItem(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")

	require.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.Equal(t, shirt.ID, item.ProductID)
	assert.Equal(t, "Large", item.Option)
	assert.Equal(t, "man-shirt.jpg", item.Image)
	require.Len(t, item.Prices, 2)
	assert.Equal(t, int64(51990000), item.Prices["ETH"].UnitAmount)
	assert.Equal(t, "0.05199", item.Prices["ETH"].Display.String())

	require.Len(t, cart.Totals, 2)
	assert.Equal(t, int64(51990000), cart.Totals["ETH"].UnitAmount)
	assert.Equal(t, int64(378000), cart.Totals["BTC"].UnitAmount)
}

func TestAddItem_NoOption(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, sticker, "")

	require.Len(t, cart.Items, 1)
	assert.Empty(t, cart.Items[0].Option)
}

func TestAddItem_NoPrices(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, domain.Product{ID: "free", Name: "Flyer"}, "")

	require.Len(t, cart.Items, 1)
	assert.Empty(t, cart.Totals)
}

func TestAddItem_SumsAcrossCurrencies(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.AddItem(cart, sticker, "")

	assert.Equal(t, int64(52990000), cart.Totals["ETH"].UnitAmount)
	assert.Equal(t, "0.05299", cart.Totals["ETH"].Display.String())
	// the sticker carries no BTC price, so the BTC total is the shirt alone
	assert.Equal(t, int64(378000), cart.Totals["BTC"].UnitAmount)
}

func TestRemoveItem_MatchesOne(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.AddItem(cart, shirt, "Small")
	l.AddItem(cart, shirt, "Large")
	require.Len(t, cart.Items, 3)

	l.RemoveItem(cart, shirt.ID, "Large")

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Small", cart.Items[0].Option)
	assert.Equal(t, "Large", cart.Items[1].Option)
	assert.Equal(t, int64(51990000*2), cart.Totals["ETH"].UnitAmount)
}

func TestRemoveItem_OptionMustMatch(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.RemoveItem(cart, shirt.ID, "Small")

	assert.Len(t, cart.Items, 1)
}

func TestRemoveItem_NoSuchProduct(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.RemoveItem(cart, "nosuchid", "Large")
	assert.Len(t, cart.Items, 1)
}

func TestRemoveItem_EmptyCart(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.RemoveItem(cart, shirt.ID, "Large")
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.Totals)
}

func TestRemoveItem_DropsEmptiedCurrency(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.AddItem(cart, sticker, "")
	l.RemoveItem(cart, shirt.ID, "Large")

	// only the sticker remains; nothing contributes BTC anymore
	_, ok := cart.Totals["BTC"]
	assert.False(t, ok)
	assert.Equal(t, int64(1000000), cart.Totals["ETH"].UnitAmount)
}

func TestRecalculateTotals_Idempotent(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.AddItem(cart, sticker, "")

	l.RecalculateTotals(cart)
	first := cart.Totals

	l.RecalculateTotals(cart)
	second := cart.Totals

	require.Len(t, second, len(first))
	for code, want := range first {
		got := second[code]
		assert.Equal(t, want.UnitAmount, got.UnitAmount)
		assert.True(t, want.Display.Equal(got.Display))
	}
}

func TestRecalculateTotals_ZeroPricedItemKeepsCurrencyKey(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	free := domain.Product{
		ID:     "free-eth",
		Name:   "Promo Patch",
		Prices: []domain.ProductPrice{{Currency: "ETH", UnitAmount: 0}},
	}
	l.AddItem(cart, free, "")

	total, ok := cart.Totals["ETH"]
	require.True(t, ok)
	assert.Equal(t, int64(0), total.UnitAmount)
}

func TestPurchaseAndReset(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")
	l.AddItem(cart, shirt, "Large")

	order := domain.Order{
		Recipient:   "Anonymous",
		Street:      "123 Fake St",
		City:        "The C-Spot",
		Province:    "AB",
		Country:     "Canada",
		Postcode:    "T1K-5B3",
		Email:       "me@example.com",
		Transaction: "0x50m3crazy1d",
		Contact:     true,
	}
	l.Purchase(cart, order)

	require.NotNil(t, cart.Order)
	assert.Equal(t, order, *cart.Order)
	// purchase does not touch items or totals
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(51990000), cart.Totals["ETH"].UnitAmount)

	l.Reset(cart)
	assert.Nil(t, cart.Order)
	assert.Empty(t, cart.Items)
	assert.Empty(t, cart.Totals)
	assert.Equal(t, "ETH", cart.PreferredCurrency)
}

func TestScenario_AddTwiceRemoveOnce(t *testing.T) {
	l := newLedger()
	cart := l.NewCart("ETH")

	l.AddItem(cart, shirt, "Large")
	l.AddItem(cart, shirt, "Large")
	l.RemoveItem(cart, shirt.ID, "Large")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(51990000), cart.Totals["ETH"].UnitAmount)
	assert.Equal(t, int64(378000), cart.Totals["BTC"].UnitAmount)
}

func TestOrderFromFields(t *testing.T) {
	fields := map[string]string{
		"recipient":   "Anonymous",
		"street":      "123 Fake St",
		"city":        "The C-Spot",
		"province":    "AB",
		"country":     "Canada",
		"postcode":    "T1K-5B3",
		"email":       "me@example.com",
		"transaction": "0x50m3crazy1d",
		"contact":     "1",
	}

	order := domain.OrderFromFields(fields)
	assert.Equal(t, "Anonymous", order.Recipient)
	assert.Equal(t, "0x50m3crazy1d", order.Transaction)
	assert.True(t, order.Contact)
	assert.True(t, order.Paid())

	order = domain.OrderFromFields(map[string]string{"transaction": "   "})
	assert.False(t, order.Contact)
	assert.False(t, order.Paid())
}
