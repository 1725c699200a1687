package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"pawboard/internal/ownership"
	"pawboard/internal/platform/audit"
	"pawboard/internal/platform/metrics"
	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

// Store is the persistence contract the service depends on.
type Store interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, reviewID id.ReviewID) (*models.Review, error)
	List(ctx context.Context) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID id.ReviewID) error
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
}

// AuditPublisher mirrors audit.Publisher for mock generation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns review reads and mutations, with the same guard ordering
// as boards: the record is resolved before ownership is checked.
type Service struct {
	reviews Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	tracer  trace.Tracer
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
}

// Option configures the Service.
type Option func(*serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = publisher }
}

func NewService(reviews Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reviews: reviews,
		logger:  logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
		tracer:  otel.Tracer("pawboard/review"),
	}
}

// Create makes a new review owned by the requester.
func (s *Service) Create(ctx context.Context, ownerID id.UserID, req models.CreateReviewRequest) (*models.Review, error) {
	ctx, span := s.tracer.Start(ctx, "review.Create")
	defer span.End()

	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	review, err := models.NewReview(id.NewReviewID(), ownerID, req, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create review")
	}
	return review, nil
}

// Get fetches a single review.
func (s *Service) Get(ctx context.Context, reviewID id.ReviewID) (*models.Review, error) {
	if reviewID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "review ID required")
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "review not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up review")
	}
	return review, nil
}

// List returns all reviews, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reviews")
	}
	return reviews, nil
}

// Update applies a partial edit after the ownership guard passes.
func (s *Service) Update(ctx context.Context, requesterID id.UserID, reviewID id.ReviewID, patch models.ReviewPatch) (*models.Review, error) {
	ctx, span := s.tracer.Start(ctx, "review.Update")
	defer span.End()

	if patch.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no fields to update")
	}

	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(ctx, requesterID, review.OwnerID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "title cannot be empty")
		}
		if len(title) > models.MaxTitleLen {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "title must be at most %d characters", models.MaxTitleLen)
		}
		review.Title = title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "content cannot be empty")
		}
		if len(content) > models.MaxContentLen {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "content must be at most %d characters", models.MaxContentLen)
		}
		review.Content = content
	}
	if patch.Rating != nil {
		if err := models.ValidateRating(*patch.Rating); err != nil {
			return nil, err
		}
		review.Rating = *patch.Rating
	}
	if patch.Images != nil {
		review.Images = *patch.Images
	}
	review.UpdatedAt = requestcontext.Now(ctx)

	if err := s.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "review not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update review")
	}
	return review, nil
}

// Delete removes a review after the ownership guard passes.
func (s *Service) Delete(ctx context.Context, requesterID id.UserID, reviewID id.ReviewID) error {
	ctx, span := s.tracer.Start(ctx, "review.Delete")
	defer span.End()

	review, err := s.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.guard(ctx, requesterID, review.OwnerID); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "review not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete review")
	}

	s.logAudit(ctx, audit.ActionReviewDeleted, requesterID)
	return nil
}

// DeleteByOwner removes every review owned by the user. Satisfies the
// auth service's content-deleter contract for account withdrawal.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	deleted, err := s.reviews.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete reviews by owner")
	}
	return deleted, nil
}

func (s *Service) guard(ctx context.Context, requesterID, ownerID id.UserID) error {
	if err := ownership.Authorize(requesterID, ownerID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			s.metrics.IncrementForbidden("review")
			s.logger.WarnContext(ctx, "forbidden review mutation",
				"request_id", requestcontext.RequestID(ctx),
				"requester_id", requesterID,
				"owner_id", ownerID,
			)
		}
		return err
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, userID id.UserID) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:    action,
		UserID:    userID,
		RequestID: requestcontext.RequestID(ctx),
		At:        requestcontext.Now(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", string(action),
			"error", err,
		)
	}
}
