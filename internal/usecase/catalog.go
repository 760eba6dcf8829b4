package usecase

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"go.uber.org/zap"
)

// CatalogService serves the public sweet listing, cache-aside over the store.
type CatalogService struct {
	sweets domain.SweetRepository
	cache  domain.CatalogCache // optional
	logger *logger.Logger
}

func NewCatalogService(sweets domain.SweetRepository, cache domain.CatalogCache, log *logger.Logger) *CatalogService {
	return &CatalogService{sweets: sweets, cache: cache, logger: log.Named("CatalogService")}
}

// ListSweets returns the catalog ordered by name.
func (c *CatalogService) ListSweets(ctx context.Context) ([]*domain.Sweet, error) {
	if c.cache != nil {
		cached, err := c.cache.GetSweets(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("Catalog cache read failed, falling back to store", zap.Error(err))
		}
	}

	// The generation is taken before reading the store so that an
	// invalidation racing with this read discards the write below.
	var (
		generation int64
		genErr     error
	)
	if c.cache != nil {
		generation, genErr = c.cache.Generation(ctx)
		if genErr != nil {
			c.logger.Warn("Catalog cache generation read failed, skipping cache fill", zap.Error(genErr))
		}
	}

	sweets, err := c.sweets.List(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && genErr == nil {
		if err := c.cache.SetSweets(ctx, generation, sweets); err != nil {
			c.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}
	return sweets, nil
}

// GetSweet returns one sweet, always read from the store.
func (c *CatalogService) GetSweet(ctx context.Context, id string) (*domain.Sweet, error) {
	return c.sweets.GetByID(ctx, id)
}

// Invalidate drops the cached listing after a write.
func (c *CatalogService) Invalidate(ctx context.Context) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Invalidate(ctx); err != nil {
		c.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
