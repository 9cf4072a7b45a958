package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
)

const (
	msgReviewTextRequired = "review text is required"
	msgRatingRequired     = "select a rating"
	msgRatingRange        = "rating must be between 1 and 5"
)

type ReviewService struct {
	backend  ports.Backend
	resolver *policy.Resolver
	logger   zerolog.Logger
}

func NewReviewService(backend ports.Backend, resolver *policy.Resolver, logger zerolog.Logger) *ReviewService {
	return &ReviewService{backend: backend, resolver: resolver, logger: logger}
}

// Add posts a review. The text and the rating are checked before the
// company is even loaded.
func (s *ReviewService) Add(ctx context.Context, sess domain.Session, companyID int64, in ports.ReviewInput) error {
	if sess.IsGuest() {
		return domain.ErrUnauthenticated
	}
	content := strings.TrimSpace(in.Content)
	switch {
	case content == "":
		return domain.NewValidationError(msgReviewTextRequired)
	case in.Rating == 0:
		return domain.NewValidationError(msgRatingRequired)
	case in.Rating < 1 || in.Rating > 5:
		return domain.NewValidationError(msgRatingRange)
	}

	api := s.backend.As(sess)
	c, err := api.Company(ctx, companyID)
	if err != nil {
		return err
	}
	if !s.resolver.CanWriteReview(sess, *c) {
		return domain.ErrForbidden
	}

	if err := api.AddReview(ctx, companyID, domain.NewReview{Content: content, Rating: in.Rating}); err != nil {
		return err
	}
	s.logger.Info().Int64("company_id", companyID).Int64("user_id", sess.UserID).Msg("review added")
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, sess domain.Session, companyID, reviewID int64, confirmed bool) error {
	if sess.IsGuest() {
		return domain.ErrUnauthenticated
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	api := s.backend.As(sess)
	c, err := api.Company(ctx, companyID)
	if err != nil {
		return err
	}
	r, ok := c.Review(reviewID)
	if !ok {
		return domain.ErrNotFound
	}
	if !s.resolver.CanDeleteReview(sess, r) {
		return domain.ErrForbidden
	}

	if err := api.DeleteReview(ctx, companyID, reviewID); err != nil {
		return err
	}
	s.logger.Info().Int64("company_id", companyID).Int64("review_id", reviewID).Int64("user_id", sess.UserID).Msg("review deleted")
	return nil
}
