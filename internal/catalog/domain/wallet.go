package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallet is a payment address for one accepted currency.
type Wallet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Currency  string             `bson:"currency" json:"currency"`
	Address   string             `bson:"address" json:"address"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
