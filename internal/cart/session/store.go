package session

import (
	"context"
	"errors"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
)

// Store persists one cart aggregate per visitor session. Implementations must
// round-trip the full cart shape, in particular the per-currency maps keyed
// by currency code.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotFound = errors.New("no cart for session")
