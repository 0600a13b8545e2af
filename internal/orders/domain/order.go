package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPaid   OrderStatus = "PAID"
	OrderStatusUnpaid OrderStatus = "UNPAID"
)

// OrderItem is a snapshot of one cart line item at purchase time, stored as
// JSONB on the order row.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Option     string `json:"option,omitempty"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
}

// OrderTotal is one currency's total over the snapshot.
type OrderTotal struct {
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
}

// Order is the archived record of a placed order. The live checkout flow
// works off the session cart; this is the durable copy the vendor consults.
type Order struct {
	ID          uuid.UUID
	SessionID   string
	Status      OrderStatus
	Recipient   string
	Street      string
	City        string
	Province    string
	Country     string
	Postcode    string
	Email       string
	Transaction string
	Contact     bool
	Items       []OrderItem
	Totals      []OrderTotal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
