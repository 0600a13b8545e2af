package service

import (
	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	"github.com/TheMiningKing/crypto-shopping-cart/pkg/currency"
)

// Ledger maintains a cart's item list and per-currency totals. It knows
// nothing about HTTP, persistence, or currency-rate sources; prices arrive
// pre-resolved on the product and the display conversion is injected.
type Ledger struct {
	convert currency.ConvertFunc
}

func NewLedger(convert currency.ConvertFunc) *Ledger {
	return &Ledger{convert: convert}
}

// NewCart produces a fresh, empty aggregate. Callers must always source carts
// from here or from the session store; the ledger does not defend against
// hand-built aggregates.
func (l *Ledger) NewCart(preferredCurrency string) *domain.Cart {
	return &domain.Cart{
		Items:             []domain.LineItem{},
		Totals:            map[string]domain.Total{},
		PreferredCurrency: preferredCurrency,
	}
}

// AddItem appends a line item built from every price entry the product
// carries and recalculates totals. An empty option means the product was
// added without a variant. A product with no price entries still adds,
// contributing nothing to totals.
func (l *Ledger) AddItem(cart *domain.Cart, product domain.Product, option string) {
	prices := make(map[string]domain.Price, len(product.Prices))
	for _, p := range product.Prices {
		prices[p.Currency] = domain.Price{
			UnitAmount: p.UnitAmount,
			Display:    l.convert(p.UnitAmount, p.Currency),
		}
	}

	cart.Items = append(cart.Items, domain.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Option:    option,
		Image:     product.Image,
		Prices:    prices,
	})
	l.RecalculateTotals(cart)
}

// RemoveItem removes at most one line item, the first whose (ProductID,
// Option) pair matches, then recalculates totals. No match is not an error;
// the cart is left unchanged.
func (l *Ledger) RemoveItem(cart *domain.Cart, productID, option string) {
	for i, item := range cart.Items {
		if item.ProductID == productID && item.Option == option {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	l.RecalculateTotals(cart)
}

// RecalculateTotals rebuilds the totals map from scratch by folding over the
// remaining items. Idempotent: with no intervening mutation, repeated calls
// produce identical totals. A currency drops out of the map entirely once no
// item carries it.
func (l *Ledger) RecalculateTotals(cart *domain.Cart) {
	totals := map[string]domain.Total{}
	for _, item := range cart.Items {
		for code, price := range item.Prices {
			t := totals[code]
			t.UnitAmount += price.UnitAmount
			totals[code] = t
		}
	}
	for code, t := range totals {
		t.Display = l.convert(t.UnitAmount, code)
		totals[code] = t
	}
	cart.Totals = totals
}

// Purchase attaches the submitted order to the cart. Pure attachment:
// validation happens before this is called, and totals are untouched.
func (l *Ledger) Purchase(cart *domain.Cart, order domain.Order) {
	o := order
	cart.Order = &o
}

// Reset clears items, totals and any attached order. The preferred currency
// survives so the visitor keeps shopping in their chosen currency.
func (l *Ledger) Reset(cart *domain.Cart) {
	cart.Items = []domain.LineItem{}
	cart.Totals = map[string]domain.Total{}
	cart.Order = nil
}
