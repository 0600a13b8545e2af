package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	cartdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
)

// PriceEntry is a product's price in one accepted currency, tied to the
// wallet that receives payment in it. Currency codes are unique within a
// product.
type PriceEntry struct {
	Currency   string             `bson:"currency" json:"currency"`
	UnitAmount int64              `bson:"unit_amount" json:"unit_amount"`
	WalletID   primitive.ObjectID `bson:"wallet_id" json:"wallet_id"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Images       []string           `bson:"images" json:"images"`
	Options      []string           `bson:"options" json:"options"`
	Categories   []string           `bson:"categories" json:"categories"`
	FriendlyLink string             `bson:"friendly_link" json:"friendly_link"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Prices       []PriceEntry       `bson:"prices" json:"prices"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// MainImage is the image shown in listings and carried onto cart line items.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasOption reports whether the product offers the given variant.
func (p *Product) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// CartProduct adapts the catalog schema into the normalized shape the cart
// ledger accepts, with ids string-normalized.
func (p *Product) CartProduct() cartdomain.Product {
	prices := make([]cartdomain.ProductPrice, 0, len(p.Prices))
	for _, entry := range p.Prices {
		prices = append(prices, cartdomain.ProductPrice{
			Currency:   entry.Currency,
			UnitAmount: entry.UnitAmount,
			WalletID:   entry.WalletID.Hex(),
		})
	}
	return cartdomain.Product{
		ID:     p.ID.Hex(),
		Name:   p.Name,
		Image:  p.MainImage(),
		Prices: prices,
	}
}
