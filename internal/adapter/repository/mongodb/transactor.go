package mongodb

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.uber.org/zap"
)

// Transactor runs a unit of work inside a multi-document transaction.
type Transactor struct {
	client *mongo.Client
	logger *logger.Logger
}

func NewTransactor(client *mongo.Client, log *logger.Logger) *Transactor {
	return &Transactor{client: client, logger: log.Named("MongoTransactor")}
}

// WithinTransaction runs fn with a session context. Repository calls made
// with that context are part of the transaction. A call made while a session
// is already bound to ctx joins it.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		t.logger.Error("Failed to start MongoDB session", zap.Error(err))
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txOpts)
	return err
}
