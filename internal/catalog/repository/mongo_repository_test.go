package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/domain"
)

func setupTestDB(t *testing.T) (*mongoRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db).(*mongoRepository)
	require.NoError(t, repo.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func seedCatalog(t *testing.T, repo *mongoRepository) (*domain.Wallet, *domain.Wallet, []*domain.Product) {
	t.Helper()
	ctx := context.Background()

	eth := &domain.Wallet{Currency: "ETH", Address: "0x123abc", Name: "Ethereum"}
	btc := &domain.Wallet{Currency: "BTC", Address: "bc1qxyz", Name: "Bitcoin"}
	require.NoError(t, repo.SeedWallet(ctx, eth))
	require.NoError(t, repo.SeedWallet(ctx, btc))

	base := time.Now().Add(-time.Hour)
	shirt := &domain.Product{
		Name:         "Men's Mining T",
		Description:  "Get fired from your job for looking too cool",
		Images:       []string{"man-shirt.jpg"},
		Options:      []string{"Small", "Medium", "Large"},
		Categories:   []string{"mens"},
		FriendlyLink: "mens-mining-t",
		Prices: []domain.PriceEntry{
			{Currency: "ETH", UnitAmount: 51990000, WalletID: eth.ID},
			{Currency: "BTC", UnitAmount: 378000, WalletID: btc.ID},
		},
		CreatedAt: base,
	}
	womens := &domain.Product{
		Name:         "Women's Mining T",
		Images:       []string{"woman-shirt.jpg"},
		Categories:   []string{"womens"},
		FriendlyLink: "womens-mining-t",
		Prices: []domain.PriceEntry{
			{Currency: "ETH", UnitAmount: 51990000, WalletID: eth.ID},
		},
		CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, repo.SeedProduct(ctx, shirt))
	require.NoError(t, repo.SeedProduct(ctx, womens))

	return eth, btc, []*domain.Product{shirt, womens}
}

func TestListProducts_InsertionOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, seeded := seedCatalog(t, repo)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, seeded[0].Name, products[0].Name)
	assert.Equal(t, seeded[1].Name, products[1].Name)
	require.Len(t, products[0].Prices, 2)
	assert.Equal(t, int64(51990000), products[0].Prices[0].UnitAmount)
}

func TestListProductsByCategory(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedCatalog(t, repo)

	products, err := repo.ListProductsByCategory(context.Background(), "womens")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Women's Mining T", products[0].Name)

	none, err := repo.ListProductsByCategory(context.Background(), "hats")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProductByFriendlyLink(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedCatalog(t, repo)

	product, err := repo.GetProductByFriendlyLink(context.Background(), "mens-mining-t")
	require.NoError(t, err)
	assert.Equal(t, "Men's Mining T", product.Name)
	assert.True(t, product.HasOption("Large"))

	_, err = repo.GetProductByFriendlyLink(context.Background(), "no-such-shirt")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductByID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, seeded := seedCatalog(t, repo)

	product, err := repo.GetProductByID(context.Background(), seeded[0].ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, seeded[0].FriendlyLink, product.FriendlyLink)

	_, err = repo.GetProductByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWallets(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	eth, _, _ := seedCatalog(t, repo)

	wallets, err := repo.ListWallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "ETH", wallets[0].Currency)

	wallet, err := repo.GetWalletByCurrency(context.Background(), "ETH")
	require.NoError(t, err)
	assert.Equal(t, eth.Address, wallet.Address)

	_, err = repo.GetWalletByCurrency(context.Background(), "DOGE")
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestCartProductAdapter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, seeded := seedCatalog(t, repo)

	product, err := repo.GetProductByID(context.Background(), seeded[0].ID.Hex())
	require.NoError(t, err)

	cp := product.CartProduct()
	assert.Equal(t, seeded[0].ID.Hex(), cp.ID)
	assert.Equal(t, "man-shirt.jpg", cp.Image)
	require.Len(t, cp.Prices, 2)
	assert.Equal(t, "ETH", cp.Prices[0].Currency)
}
