package repository

import (
	"context"
	"errors"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrWalletNotFound  = errors.New("wallet not found")
)

// CatalogRepository serves products and wallets. Listings come back in
// insertion order, the order the storefront displays them in.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	GetProductByFriendlyLink(ctx context.Context, link string) (*domain.Product, error)
	ListWallets(ctx context.Context) ([]*domain.Wallet, error)
	GetWalletByCurrency(ctx context.Context, currency string) (*domain.Wallet, error)
}
