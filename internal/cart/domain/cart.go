package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price is one currency's snapshot price on a cart line item: the amount in
// the currency's smallest unit plus its display representation.
type Price struct {
	UnitAmount int64           `json:"unit_amount" bson:"unit_amount"`
	Display    decimal.Decimal `json:"display" bson:"display"`
}

// Total is a per-currency running total over every line item that carries a
// price in that currency.
type Total struct {
	UnitAmount int64           `json:"unit_amount" bson:"unit_amount"`
	Display    decimal.Decimal `json:"display" bson:"display"`
}

// LineItem is one entry in the cart. Identity for removal is the pair
// (ProductID, Option); an empty Option only matches entries with no option.
type LineItem struct {
	ProductID string           `json:"product_id" bson:"product_id"`
	Name      string           `json:"name" bson:"name"`
	Option    string           `json:"option,omitempty" bson:"option,omitempty"`
	Image     string           `json:"image" bson:"image"`
	Prices    map[string]Price `json:"prices" bson:"prices"`
}

// Cart is the session-scoped aggregate. One cart per visitor session; the
// caller owns persistence and threads the value through every ledger call.
type Cart struct {
	Items             []LineItem       `json:"items" bson:"items"`
	Totals            map[string]Total `json:"totals" bson:"totals"`
	PreferredCurrency string           `json:"preferred_currency,omitempty" bson:"preferred_currency,omitempty"`
	Order             *Order           `json:"order,omitempty" bson:"order,omitempty"`
}

// Clone returns an independent copy of the cart: items, price maps, totals
// and any attached order are all duplicated. Mutating the clone never touches
// the original.
func (c *Cart) Clone() *Cart {
	clone := &Cart{
		Items:             make([]LineItem, len(c.Items)),
		Totals:            make(map[string]Total, len(c.Totals)),
		PreferredCurrency: c.PreferredCurrency,
	}
	for i, item := range c.Items {
		prices := make(map[string]Price, len(item.Prices))
		for code, price := range item.Prices {
			prices[code] = price
		}
		item.Prices = prices
		clone.Items[i] = item
	}
	for code, total := range c.Totals {
		clone.Totals[code] = total
	}
	if c.Order != nil {
		order := *c.Order
		clone.Order = &order
	}
	return clone
}

// Order is the shipping/contact data captured at checkout, attached verbatim
// to the cart until explicitly cleared. Trimming is validation's job, not
// storage's.
type Order struct {
	Recipient   string `json:"recipient" bson:"recipient"`
	Street      string `json:"street" bson:"street"`
	City        string `json:"city" bson:"city"`
	Province    string `json:"province" bson:"province"`
	Country     string `json:"country" bson:"country"`
	Postcode    string `json:"postcode" bson:"postcode"`
	Email       string `json:"email" bson:"email"`
	Transaction string `json:"transaction" bson:"transaction"`
	Contact     bool   `json:"contact" bson:"contact"`
}

// OrderFromFields copies submitted form fields into an Order. The contact
// checkbox arrives as whatever the form posts ("1", "on", ...); any non-blank
// value other than "0" or "false" counts as set.
func OrderFromFields(fields map[string]string) Order {
	return Order{
		Recipient:   fields["recipient"],
		Street:      fields["street"],
		City:        fields["city"],
		Province:    fields["province"],
		Country:     fields["country"],
		Postcode:    fields["postcode"],
		Email:       fields["email"],
		Transaction: fields["transaction"],
		Contact:     Truthy(fields["contact"]),
	}
}

// Paid reports whether a transaction id was supplied with the order.
func (o Order) Paid() bool {
	return strings.TrimSpace(o.Transaction) != ""
}

// Truthy interprets a posted checkbox value.
func Truthy(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	return v != "" && v != "0" && v != "false"
}

// Product is the normalized product shape the cart ledger accepts. Catalog
// sources with their own schemas adapt into this before items reach the cart.
type Product struct {
	ID     string
	Name   string
	Image  string
	Prices []ProductPrice
}

// ProductPrice is one accepted currency on a product. Currency codes are
// unique within a product.
type ProductPrice struct {
	Currency   string
	UnitAmount int64
	WalletID   string
}
