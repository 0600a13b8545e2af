package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/domain"
)

type mongoRepository struct {
	products *mongo.Collection
	wallets  *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CatalogRepository {
	return &mongoRepository{
		products: db.Collection("products"),
		wallets:  db.Collection("wallets"),
	}
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "friendly_link", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "categories", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	_, err = m.wallets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "currency", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create wallet index: %w", err)
	}

	return nil
}

func (m *mongoRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return m.findProducts(ctx, bson.M{})
}

func (m *mongoRepository) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return m.findProducts(ctx, bson.M{"categories": category})
}

func (m *mongoRepository) findProducts(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (m *mongoRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := m.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *mongoRepository) GetProductByFriendlyLink(ctx context.Context, link string) (*domain.Product, error) {
	var product domain.Product
	if err := m.products.FindOne(ctx, bson.M{"friendly_link": link}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *mongoRepository) ListWallets(ctx context.Context) ([]*domain.Wallet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.wallets.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer cursor.Close(ctx)

	var wallets []*domain.Wallet
	if err := cursor.All(ctx, &wallets); err != nil {
		return nil, fmt.Errorf("failed to decode wallets: %w", err)
	}

	return wallets, nil
}

func (m *mongoRepository) GetWalletByCurrency(ctx context.Context, currency string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := m.wallets.FindOne(ctx, bson.M{"currency": currency}).Decode(&wallet); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return &wallet, nil
}

// SeedProduct inserts a product with timestamps set, primarily for seeding
// and tests.
func (m *mongoRepository) SeedProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	result, err := m.products.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// SeedWallet inserts a wallet with its timestamp set.
func (m *mongoRepository) SeedWallet(ctx context.Context, wallet *domain.Wallet) error {
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = time.Now()
	}

	result, err := m.wallets.InsertOne(ctx, wallet)
	if err != nil {
		return fmt.Errorf("failed to insert wallet: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		wallet.ID = oid
	}
	return nil
}
