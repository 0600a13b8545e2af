package session

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/service"
)

// Manager loads a session's cart, seeding a fresh one with the deployment's
// preferred currency the first time a session is observed.
type Manager struct {
	store     Store
	ledger    *service.Ledger
	preferred string
	sfg       singleflight.Group // collapses concurrent loads of the same session
}

func NewManager(store Store, ledger *service.Ledger, preferredCurrency string) *Manager {
	return &Manager{
		store:     store,
		ledger:    ledger,
		preferred: preferredCurrency,
	}
}

// LoadOrCreate returns the session's cart, or a fresh empty one if the store
// has none. Double-submitted requests from the same session share one store
// read, but each caller receives its own copy: handlers mutate the aggregate,
// and two requests must never share one. The collapsed read is detached from
// any single caller's cancellation since other callers may be waiting on it.
func (m *Manager) LoadOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		cart, err := m.store.Get(context.WithoutCancel(ctx), sessionID)
		if errors.Is(err, ErrNotFound) {
			return m.ledger.NewCart(m.preferred), nil
		}
		if err != nil {
			return nil, err
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart).Clone(), nil
}

// Save persists the cart back to the store.
func (m *Manager) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	return m.store.Save(ctx, sessionID, cart)
}
