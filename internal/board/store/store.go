// Package store persists boards. Implementations return sentinel errors
// for infrastructure facts; translating them into domain errors is the
// service's job.
package store

import (
	"context"

	"pawboard/internal/board/models"
	id "pawboard/pkg/domain"
)

// Store is the persistence contract for boards.
type Store interface {
	Create(ctx context.Context, board *models.Board) error
	FindByID(ctx context.Context, boardID id.BoardID) (*models.Board, error)
	// List returns all boards, newest first.
	List(ctx context.Context) ([]*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, boardID id.BoardID) error
	// DeleteByOwner removes every board owned by the user and reports how
	// many were deleted. Used by account withdrawal.
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
}
