//go:build integration

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	testClient *mongo.Client
	testRepos  *Repositories
	testDB     *mongo.Database
)

// TestMain starts a single-node replica set; transactions are not available
// on a standalone server.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start MongoDB resource: %s", err)
	}
	hostPort := resource.GetHostPort("27017/tcp")

	if err := pool.Retry(func() error {
		direct, err := mongo.Connect(context.Background(), options.Client().
			ApplyURI(fmt.Sprintf("mongodb://%s/?directConnection=true", hostPort)))
		if err != nil {
			return err
		}
		defer direct.Disconnect(context.Background())
		if err := direct.Ping(context.Background(), nil); err != nil {
			return err
		}
		cmd := bson.D{{Key: "replSetInitiate", Value: bson.M{
			"_id":     "rs0",
			"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
		}}}
		err = direct.Database("admin").RunCommand(context.Background(), cmd).Err()
		if err != nil && !isAlreadyInitialized(err) {
			return err
		}
		var status bson.M
		if err := direct.Database("admin").RunCommand(context.Background(), bson.D{{Key: "hello", Value: 1}}).Decode(&status); err != nil {
			return err
		}
		if primary, _ := status["isWritablePrimary"].(bool); !primary {
			return fmt.Errorf("replica set has no primary yet")
		}
		return nil
	}); err != nil {
		log.Fatalf("Could not initiate replica set: %s", err)
	}

	testClient, err = mongo.Connect(context.Background(), options.Client().
		ApplyURI(fmt.Sprintf("mongodb://%s/?directConnection=true", hostPort)))
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %s", err)
	}
	testDB = testClient.Database("storefront_test")
	testRepos, err = NewRepositories(testClient, testDB, logger.NewNop())
	if err != nil {
		log.Fatalf("Could not create repositories: %s", err)
	}

	code := m.Run()

	_ = testClient.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge MongoDB resource: %s", err)
	}
	os.Exit(code)
}

func isAlreadyInitialized(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Name == "AlreadyInitialized"
}

func clearCollections(t *testing.T) {
	t.Helper()
	for _, name := range []string{sweetCollectionName, orderCollectionName, reviewCollectionName, userCollectionName, contactCollectionName} {
		_, err := testDB.Collection(name).DeleteMany(context.Background(), bson.M{})
		require.NoError(t, err)
	}
}

func TestSweetRepository_DetailsNeverTouchRating(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	sweet := &domain.Sweet{Name: "Brigadeiro", Price: 2.5, Category: "Docinhos", ImageURL: "https://img/b.png"}
	require.NoError(t, testRepos.Sweets.Create(ctx, sweet))
	require.NoError(t, testRepos.Sweets.UpdateRating(ctx, sweet.ID, domain.RatingAggregate{Average: 4.5, Count: 2}))

	updated, err := testRepos.Sweets.UpdateDetails(ctx, sweet.ID, domain.SweetDetails{Name: "Brigadeiro Gourmet", Price: 3, Category: "Docinhos", ImageURL: "https://img/b.png"})

	require.NoError(t, err)
	assert.Equal(t, "Brigadeiro Gourmet", updated.Name)
	assert.Equal(t, domain.RatingAggregate{Average: 4.5, Count: 2}, updated.Rating)

	_, err = testRepos.Sweets.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	sweet := &domain.Sweet{Name: "Beijinho", Price: 2}
	require.NoError(t, testRepos.Sweets.Create(ctx, sweet))

	err := testRepos.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := testRepos.Sweets.UpdateRating(txCtx, sweet.ID, domain.RatingAggregate{Average: 5, Count: 1}); err != nil {
			return err
		}
		return domain.ErrReviewAlreadyExists
	})

	assert.ErrorIs(t, err, domain.ErrReviewAlreadyExists)
	got, err := testRepos.Sweets.GetByID(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingAggregate{}, got.Rating)
}

func TestReviewRepository_UniquePerUserSweetOrder(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	first := &domain.Review{SweetID: "X", OrderID: "O", UserID: "U1", UserName: "Ana", Rating: 5, Comment: "ótimo"}
	require.NoError(t, testRepos.Reviews.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	dup := &domain.Review{SweetID: "X", OrderID: "O", UserID: "U1", UserName: "Ana", Rating: 1, Comment: "de novo"}
	assert.ErrorIs(t, testRepos.Reviews.Create(ctx, dup), domain.ErrReviewAlreadyExists)

	other := &domain.Review{SweetID: "X", OrderID: "O2", UserID: "U1", UserName: "Ana", Rating: 4, Comment: "outro pedido"}
	require.NoError(t, testRepos.Reviews.Create(ctx, other))

	list, err := testRepos.Reviews.ListByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTransactor_ConcurrentAggregateUpdates(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	sweet := &domain.Sweet{Name: "Cocada", Price: 4}
	require.NoError(t, testRepos.Sweets.Create(ctx, sweet))

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- testRepos.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
				s, err := testRepos.Sweets.GetByID(txCtx, sweet.ID)
				if err != nil {
					return err
				}
				if err := testRepos.Sweets.UpdateRating(txCtx, s.ID, s.Rating.Add(5)); err != nil {
					return err
				}
				return testRepos.Reviews.Create(txCtx, &domain.Review{
					SweetID: s.ID, OrderID: fmt.Sprintf("O%d", i), UserID: "U1", UserName: "Ana", Rating: 5, Comment: "c",
				})
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := testRepos.Sweets.GetByID(ctx, sweet.ID)
	require.NoError(t, err)
	assert.Equal(t, writers, got.Rating.Count)
	assert.InDelta(t, 5.0, got.Rating.Average, 1e-9)
}

func TestOrderRepository_ListNewestFirstAndStatus(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	older := &domain.Order{UserID: "U1", Status: domain.OrderStatusConcluded, Items: []domain.LineItem{{SweetID: "X", Name: "Brigadeiro", Quantity: 2}}}
	require.NoError(t, testRepos.Orders.Create(ctx, older))
	newer := &domain.Order{UserID: "U1", Status: domain.OrderStatusPending, CreatedAt: older.CreatedAt.Add(time.Second)}
	require.NoError(t, testRepos.Orders.Create(ctx, newer))

	orders, err := testRepos.Orders.ListByUser(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.Items, orders[1].Items)

	status := domain.OrderStatusConcluded
	concluded, err := testRepos.Orders.List(ctx, domain.OrderFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, concluded, 1)
	assert.Equal(t, older.ID, concluded[0].ID)

	updated, err := testRepos.Orders.UpdateStatus(ctx, newer.ID, domain.OrderStatusInProduction)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProduction, updated.Status)
}

func TestUserRepository_UpsertKeepsRole(t *testing.T) {
	clearCollections(t)
	ctx := context.Background()
	_, err := testDB.Collection(userCollectionName).InsertOne(ctx, bson.M{"_id": "ADM", "fullName": "Dona Maria", "email": "m@example.com", "role": domain.RoleAdmin})
	require.NoError(t, err)

	u, err := testRepos.Users.UpsertProfile(ctx, "ADM", domain.ProfileUpdate{FullName: "Maria", Email: "maria@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	created, err := testRepos.Users.UpsertProfile(ctx, "U2", domain.ProfileUpdate{FullName: "Bia", Email: "bia@example.com"})
	require.NoError(t, err)
	assert.Empty(t, created.Role)
	assert.False(t, created.CreatedAt.IsZero())
}
