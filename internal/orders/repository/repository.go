package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/orders/domain"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order already archived")
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersBySession(ctx context.Context, sessionID string) ([]*domain.Order, error)
	Close() error
}

// Credentials carries the connection and migration settings for the
// postgres-backed repository.
type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}
