package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"pawboard/internal/board/models"
	"pawboard/internal/ownership"
	"pawboard/internal/platform/audit"
	"pawboard/internal/platform/metrics"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AuditPublisher

// Store is the persistence contract the service depends on.
type Store interface {
	Create(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, boardID id.BoardID) (*models.Board, error)
	List(ctx context.Context) ([]*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, boardID id.BoardID) error
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
}

// AuditPublisher mirrors audit.Publisher for mock generation.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns board reads and mutations. Every mutation on an existing
// board resolves the record first and only then runs the ownership guard,
// so a missing board reports not found rather than forbidden.
type Service struct {
	boards  Store
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

func NewService(boards Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		boards:  boards,
		logger:  logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
		tracer:  otel.Tracer("pawboard/board"),
	}
}

// Create makes a new board owned by the requester. Ownership comes from
// the verified identity, never from the request body.
func (s *Service) Create(ctx context.Context, ownerID id.UserID, req models.CreateBoardRequest) (*models.Board, error) {
	ctx, span := s.tracer.Start(ctx, "board.Create")
	defer span.End()

	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	board, err := models.NewBoard(id.NewBoardID(), ownerID, req, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.boards.Create(ctx, board); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create board")
	}
	return board, nil
}

// Get fetches a single board.
func (s *Service) Get(ctx context.Context, boardID id.BoardID) (*models.Board, error) {
	if boardID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "board ID required")
	}
	board, err := s.boards.FindByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "board not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up board")
	}
	return board, nil
}

// List returns all boards, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Board, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list boards")
	}
	return boards, nil
}

// Update applies a partial edit after the ownership guard passes.
func (s *Service) Update(ctx context.Context, requesterID id.UserID, boardID id.BoardID, patch models.BoardPatch) (*models.Board, error) {
	ctx, span := s.tracer.Start(ctx, "board.Update")
	defer span.End()

	if patch.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no fields to update")
	}

	board, err := s.Get(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(ctx, requesterID, board.OwnerID); err != nil {
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
		board.Title = title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "content cannot be empty")
		}
		if len(content) > models.MaxContentLen {
			return nil, dErrors.Newf(dErrors.CodeBadRequest, "content must be at most %d characters", models.MaxContentLen)
		}
		board.Content = content
	}
	if patch.AnimalType != nil {
		board.AnimalType = strings.TrimSpace(*patch.AnimalType)
	}
	if patch.Category != nil {
		board.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Images != nil {
		board.Images = *patch.Images
	}
	board.UpdatedAt = requestcontext.Now(ctx)

	if err := s.boards.Update(ctx, board); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "board not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update board")
	}
	return board, nil
}

// Delete removes a board after the ownership guard passes. Hard delete,
// no recovery.
func (s *Service) Delete(ctx context.Context, requesterID id.UserID, boardID id.BoardID) error {
	ctx, span := s.tracer.Start(ctx, "board.Delete")
	defer span.End()

	board, err := s.Get(ctx, boardID)
	if err != nil {
		return err
	}
	if err := s.guard(ctx, requesterID, board.OwnerID); err != nil {
		return err
	}

	if err := s.boards.Delete(ctx, boardID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "board not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete board")
	}

	s.logAudit(ctx, audit.ActionBoardDeleted, requesterID)
	return nil
}

// DeleteByOwner removes every board owned by the user. Satisfies the auth
// service's content-deleter contract for account withdrawal.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error) {
	deleted, err := s.boards.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete boards by owner")
	}
	return deleted, nil
}

func (s *Service) guard(ctx context.Context, requesterID, ownerID id.UserID) error {
	if err := ownership.Authorize(requesterID, ownerID); err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			s.metrics.IncrementForbidden("board")
			s.logger.WarnContext(ctx, "forbidden board mutation",
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
