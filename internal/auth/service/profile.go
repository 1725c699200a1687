package service

import (
	"context"
	"errors"
	"strings"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
	"pawboard/pkg/requestcontext"
)

// GetUser fetches the account for a verified identity. A token can
// outlive its account (expiry is the only token invalidation), so "claims
// valid but account gone" is a NotFound here, never an implicit success.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. The patch type carries
// no credential fields, so this path is blind to passwords by
// construction.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, patch models.ProfilePatch) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}
	if patch.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no fields to update")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Nickname != nil {
		nickname := strings.TrimSpace(*patch.Nickname)
		if nickname == "" {
			return nil, dErrors.New(dErrors.CodeBadRequest, "nickname cannot be empty")
		}
		user.Nickname = nickname
	}
	if patch.ProfilePicture != nil {
		user.ProfilePicture = *patch.ProfilePicture
	}
	user.UpdatedAt = requestcontext.Now(ctx)

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNicknameTaken):
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "nickname already taken")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
		}
	}
	return user, nil
}

// CheckNickname reports whether a nickname is already registered. Exposed
// publicly so signup forms can pre-check availability; the directory's
// Create remains the authoritative uniqueness gate.
func (s *Service) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return false, dErrors.New(dErrors.CodeBadRequest, "nickname is required")
	}

	_, err := s.users.FindByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check nickname")
	}
	return true, nil
}
