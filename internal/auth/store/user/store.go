// Package user provides the account directory: the single source of truth
// for email and nickname uniqueness.
package user

import (
	"context"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
)

// Store is the user directory contract. Implementations must make the
// uniqueness check and insert in Create atomic with respect to concurrent
// creates: no duplicate may slip through a race.
//
// Lookups return sentinel.ErrNotFound for missing records; Create returns
// sentinel.ErrEmailTaken or sentinel.ErrNicknameTaken on conflicts.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByNickname(ctx context.Context, nickname string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID id.UserID) error
}
