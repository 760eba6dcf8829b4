package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	catalogKey           = "catalog:sweets"
	catalogGenerationKey = "catalog:sweets:generation"
)

// CatalogCache stores the full sweet listing under one key. The generation
// key has no TTL; it only ever grows.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

type cachedSweet struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"imageUrl"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GetSweets returns domain.ErrNotFound on a cache miss.
func (c *CatalogCache) GetSweets(ctx context.Context) ([]*domain.Sweet, error) {
	val, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read catalog from redis: %w", err)
	}

	var cached []cachedSweet
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached catalog: %w", err)
	}
	sweets := make([]*domain.Sweet, len(cached))
	for i, s := range cached {
		sweets[i] = &domain.Sweet{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			Category:    s.Category,
			ImageURL:    s.ImageURL,
			Rating:      domain.RatingAggregate{Average: s.AverageRating, Count: s.ReviewCount},
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		}
	}
	return sweets, nil
}

// Generation returns the current invalidation count, 0 before the first one.
func (c *CatalogCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, catalogGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog generation from redis: %w", err)
	}
	return gen, nil
}

// SetSweets caches the listing unless the generation moved past generation.
// A skipped write is not an error.
func (c *CatalogCache) SetSweets(ctx context.Context, generation int64, sweets []*domain.Sweet) error {
	cached := make([]cachedSweet, len(sweets))
	for i, s := range sweets {
		cached[i] = cachedSweet{
			ID:            s.ID,
			Name:          s.Name,
			Description:   s.Description,
			Price:         s.Price,
			Category:      s.Category,
			ImageURL:      s.ImageURL,
			AverageRating: s.Rating.Average,
			ReviewCount:   s.Rating.Count,
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		}
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, catalogGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleCatalog
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, catalogKey, data, c.ttl)
			return nil
		})
		return err
	}, catalogGenerationKey)
	switch {
	case err == nil, errors.Is(err, errStaleCatalog), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		return fmt.Errorf("failed to write catalog to redis: %w", err)
	}
}

var errStaleCatalog = errors.New("catalog generation changed")

// Invalidate drops the listing and bumps the generation in one transaction.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, catalogGenerationKey)
		pipe.Del(ctx, catalogKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate catalog in redis: %w", err)
	}
	return nil
}
