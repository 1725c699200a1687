package service

import (
	"context"
	"errors"
	"strings"

	"pawboard/internal/auth/models"
	"pawboard/internal/platform/audit"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

// SignUp validates the request, hashes the password, and creates the
// account. The directory is the single source of truth for uniqueness;
// its conflicts are surfaced as distinct typed errors so the boundary can
// map duplicate-email and duplicate-nickname to specific outcomes.
func (s *Service) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.SignUp")
	defer span.End()

	req.Email = strings.TrimSpace(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)

	if req.Email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if req.Nickname == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "nickname is required")
	}
	if req.Password == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := models.NewUser(id.NewUserID(), req.Email, req.Nickname, hash, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrEmailTaken):
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "email already registered")
		case errors.Is(err, sentinel.ErrNicknameTaken):
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "nickname already taken")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
		}
	}

	s.metrics.IncrementUsersCreated()
	s.logAudit(ctx, audit.ActionUserCreated, user.ID, user.Email, "")

	return user, nil
}
