package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	sweetCollectionName   = "sweets"
	orderCollectionName   = "orders"
	reviewCollectionName  = "reviews"
	userCollectionName    = "users"
	contactCollectionName = "contacts"

	indexTimeout = 10 * time.Second
)

// Connect opens a client and pings the primary. Transactions need the
// server to run as a replica set.
func Connect(ctx context.Context, uri string, log *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("Successfully connected and pinged MongoDB.")
	return client, nil
}

// Repositories bundles every Mongo-backed repository of one database.
type Repositories struct {
	Transactor *Transactor
	Sweets     *SweetRepository
	Orders     *OrderRepository
	Reviews    *ReviewRepository
	Users      *UserRepository
	Contacts   *ContactRepository
}

// NewRepositories builds the repositories and ensures their indexes.
func NewRepositories(client *mongo.Client, db *mongo.Database, log *logger.Logger) (*Repositories, error) {
	reviews, err := NewReviewRepository(db, log)
	if err != nil {
		return nil, err
	}
	orders, err := NewOrderRepository(db, log)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Transactor: NewTransactor(client, log),
		Sweets:     NewSweetRepository(db, log),
		Orders:     orders,
		Reviews:    reviews,
		Users:      NewUserRepository(db, log),
		Contacts:   NewContactRepository(db, log),
	}, nil
}

func ensureIndexes(coll *mongo.Collection, indexes []mongo.IndexModel, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes", zap.String("collection", coll.Name()), zap.Error(err))
		return fmt.Errorf("create indexes for %s: %w", coll.Name(), err)
	}
	log.Info("Successfully ensured indexes", zap.String("collection", coll.Name()))
	return nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}
