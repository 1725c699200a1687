package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"pawboard/internal/auth/models"
	"pawboard/internal/auth/password"
	"pawboard/internal/platform/audit"
	"pawboard/internal/platform/metrics"
	id "pawboard/pkg/domain"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,ContentDeleter,AuditPublisher

// UserStore is the directory contract the service depends on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID id.UserID) error
}

// ContentDeleter removes all content records owned by a user. Board and
// review stores implement it so account withdrawal can cascade.
type ContentDeleter interface {
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
}

// AuditPublisher mirrors audit.Publisher for mock generation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates signup, login, and account lifecycle. It owns
// hashing and directory access; token minting stays at the HTTP boundary
// so session concerns never leak into credential handling.
type Service struct {
	users   UserStore
	hasher  *password.Hasher
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	content []ContentDeleter
	tracer  trace.Tracer
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   AuditPublisher
	content []ContentDeleter
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

// WithContentDeleters registers the stores whose records are removed when
// an account withdraws.
func WithContentDeleters(deleters ...ContentDeleter) Option {
	return func(cfg *serviceConfig) { cfg.content = append(cfg.content, deleters...) }
}

func NewService(users UserStore, hasher *password.Hasher, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:   users,
		hasher:  hasher,
		logger:  logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
		content: cfg.content,
		tracer:  otel.Tracer("pawboard/auth"),
	}
}

// logAudit emits an audit event. Failures are logged and dropped: audit
// is ops-grade and never fails the originating operation.
func (s *Service) logAudit(ctx context.Context, action audit.Action, userID id.UserID, email, reason string) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Action:    action,
		UserID:    userID,
		Email:     email,
		Reason:    reason,
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
