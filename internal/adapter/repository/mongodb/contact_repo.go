package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ContactRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewContactRepository(db *mongo.Database, log *logger.Logger) *ContactRepository {
	return &ContactRepository{collection: db.Collection(contactCollectionName), logger: log.Named("ContactRepository")}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	msg.ID = newID()
	msg.CreatedAt = time.Now().UTC()
	doc := contactDocument{
		ID:        msg.ID,
		FirstName: msg.FirstName,
		LastName:  msg.LastName,
		Email:     msg.Email,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert contact message into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed to list contact messages from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*contactDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	msgs := make([]*domain.ContactMessage, len(docs))
	for i, doc := range docs {
		msgs[i] = doc.toDomain()
	}
	return msgs, nil
}
