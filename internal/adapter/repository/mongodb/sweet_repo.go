package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SweetRepository implements domain.SweetRepository using MongoDB.
type SweetRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewSweetRepository(db *mongo.Database, log *logger.Logger) *SweetRepository {
	return &SweetRepository{
		collection: db.Collection(sweetCollectionName),
		logger:     log.Named("SweetRepository"),
	}
}

func (r *SweetRepository) Create(ctx context.Context, sweet *domain.Sweet) error {
	if sweet.ID == "" {
		sweet.ID = newID()
	}
	now := time.Now().UTC()
	sweet.CreatedAt, sweet.UpdatedAt = now, now

	if _, err := r.collection.InsertOne(ctx, fromDomainSweet(sweet)); err != nil {
		r.logger.Error("Failed to insert sweet into DB", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("Sweet created in DB", zap.String("sweet_id", sweet.ID))
	return nil
}

func (r *SweetRepository) GetByID(ctx context.Context, id string) (*domain.Sweet, error) {
	var doc sweetDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("sweet %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("Failed to get sweet by ID from DB", zap.String("sweet_id", id), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) List(ctx context.Context) ([]*domain.Sweet, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed to list sweets from DB", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*sweetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	sweets := make([]*domain.Sweet, len(docs))
	for i, doc := range docs {
		sweets[i] = doc.toDomain()
	}
	return sweets, nil
}

// UpdateDetails sets the catalog fields and leaves averageRating and
// reviewCount alone.
func (r *SweetRepository) UpdateDetails(ctx context.Context, id string, d domain.SweetDetails) (*domain.Sweet, error) {
	update := bson.M{"$set": bson.M{
		"name":        d.Name,
		"description": d.Description,
		"price":       d.Price,
		"category":    d.Category,
		"imageUrl":    d.ImageURL,
		"updatedAt":   time.Now().UTC(),
	}}
	var doc sweetDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("sweet %s: %w", id, domain.ErrNotFound)
		}
		r.logger.Error("Failed to update sweet in DB", zap.String("sweet_id", id), zap.Error(err))
		return nil, fmt.Errorf("db update failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SweetRepository) UpdateRating(ctx context.Context, id string, rating domain.RatingAggregate) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"averageRating": rating.Average,
		"reviewCount":   rating.Count,
		"updatedAt":     time.Now().UTC(),
	}})
	if err != nil {
		r.logger.Error("Failed to update sweet rating in DB", zap.String("sweet_id", id), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("sweet %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("Failed to delete sweet from DB", zap.String("sweet_id", id), zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("sweet %s: %w", id, domain.ErrNotFound)
	}
	r.logger.Info("Sweet deleted from DB", zap.String("sweet_id", id))
	return nil
}
