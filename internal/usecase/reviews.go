package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// ReviewService owns every write that touches a sweet's rating aggregate.
type ReviewService struct {
	tx      domain.Transactor
	sweets  domain.SweetRepository
	reviews domain.ReviewRepository
	users   domain.UserRepository
	catalog *CatalogService
	pub     EventPublisher
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewReviewService(
	tx domain.Transactor,
	sweets domain.SweetRepository,
	reviews domain.ReviewRepository,
	users domain.UserRepository,
	catalog *CatalogService,
	pub EventPublisher,
	m *metrics.MetricsManager,
	log *logger.Logger,
) *ReviewService {
	if pub == nil {
		pub = NoopPublisher{}
	}
	return &ReviewService{
		tx:      tx,
		sweets:  sweets,
		reviews: reviews,
		users:   users,
		catalog: catalog,
		pub:     pub,
		metrics: m,
		logger:  log.Named("ReviewService"),
	}
}

// ReviewSubmission is a validated review ready to be committed.
type ReviewSubmission struct {
	SweetID  string
	OrderID  string
	UserID   string
	UserName string
	Rating   int
	Comment  string
}

// ResolveUserName returns the name shown next to a review: the profile's full
// name, or the identity provider's display name when the profile has none.
func (s *ReviewService) ResolveUserName(ctx context.Context, p *domain.Principal) (string, error) {
	u, err := s.users.GetByID(ctx, p.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return p.DisplayName, nil
	case err != nil:
		return "", fmt.Errorf("load user profile: %w", err)
	case u.FullName != "":
		return u.FullName, nil
	default:
		return p.DisplayName, nil
	}
}

// Submit inserts the review and folds its rating into the sweet aggregate as
// one transaction. If the sweet does not exist nothing is written.
func (s *ReviewService) Submit(ctx context.Context, sub ReviewSubmission) (*domain.Review, error) {
	review, err := domain.NewReview(sub.SweetID, sub.OrderID, sub.UserID, sub.UserName, sub.Comment, sub.Rating)
	if err != nil {
		s.metrics.ReviewSubmitFailed("invalid")
		return nil, err
	}

	var aggregate domain.RatingAggregate
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		sweet, err := s.sweets.GetByID(txCtx, review.SweetID)
		if err != nil {
			return err
		}
		aggregate = sweet.Rating.Add(review.Rating)
		if err := s.sweets.UpdateRating(txCtx, sweet.ID, aggregate); err != nil {
			return err
		}
		return s.reviews.Create(txCtx, review)
	})
	if err != nil {
		s.metrics.ReviewSubmitFailed(failureReason(err))
		s.logger.Error("Review transaction failed",
			zap.String("sweet_id", review.SweetID),
			zap.String("order_id", review.OrderID),
			zap.String("user_id", review.UserID),
			zap.Error(err))
		return nil, err
	}

	s.metrics.ReviewSubmitted()
	s.logger.Info("Review submitted",
		zap.String("review_id", review.ID),
		zap.String("sweet_id", review.SweetID),
		zap.Int("rating", review.Rating),
		zap.Float64("average_rating", aggregate.Average),
		zap.Int("review_count", aggregate.Count))

	s.catalog.Invalidate(ctx)
	s.publish(ctx, SubjectReviewSubmitted, ReviewSubmittedEvent{
		ReviewID:      review.ID,
		SweetID:       review.SweetID,
		OrderID:       review.OrderID,
		UserID:        review.UserID,
		Rating:        review.Rating,
		AverageRating: aggregate.Average,
		ReviewCount:   aggregate.Count,
		CreatedAt:     review.CreatedAt,
	})
	return review, nil
}

// Delete removes a review and takes its rating back out of the sweet
// aggregate in one transaction. A review whose sweet is gone is still removed.
func (s *ReviewService) Delete(ctx context.Context, reviewID string) error {
	var (
		review    *domain.Review
		aggregate domain.RatingAggregate
	)
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		review, err = s.reviews.GetByID(txCtx, reviewID)
		if err != nil {
			return err
		}
		sweet, err := s.sweets.GetByID(txCtx, review.SweetID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("Deleting review of a sweet that no longer exists", zap.String("review_id", reviewID), zap.String("sweet_id", review.SweetID))
		case err != nil:
			return err
		default:
			aggregate = sweet.Rating.Remove(review.Rating)
			if err := s.sweets.UpdateRating(txCtx, sweet.ID, aggregate); err != nil {
				return err
			}
		}
		return s.reviews.Delete(txCtx, reviewID)
	})
	if err != nil {
		s.logger.Error("Review delete transaction failed", zap.String("review_id", reviewID), zap.Error(err))
		return err
	}

	s.metrics.ReviewDeleted()
	s.logger.Info("Review deleted", zap.String("review_id", reviewID), zap.String("sweet_id", review.SweetID))

	s.catalog.Invalidate(ctx)
	s.publish(ctx, SubjectReviewDeleted, ReviewDeletedEvent{
		ReviewID:      review.ID,
		SweetID:       review.SweetID,
		OrderID:       review.OrderID,
		UserID:        review.UserID,
		AverageRating: aggregate.Average,
		ReviewCount:   aggregate.Count,
		DeletedAt:     time.Now().UTC(),
	})
	return nil
}

// List returns every review, newest first.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.List(ctx)
}

// ListByUser returns the reviews a user has written.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

func (s *ReviewService) publish(ctx context.Context, subject string, data interface{}) {
	if err := s.pub.Publish(ctx, subject, data); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "sweet_not_found"
	case errors.Is(err, domain.ErrReviewAlreadyExists):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "store"
	}
}
