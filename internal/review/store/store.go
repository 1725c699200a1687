// Package store persists reviews. Implementations return sentinel errors
// for infrastructure facts; translating them into domain errors is the
// service's job.
package store

import (
	"context"

	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
)

// Store is the persistence contract for reviews.
type Store interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, reviewID id.ReviewID) (*models.Review, error)
	// List returns all reviews, newest first.
	List(ctx context.Context) ([]*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID id.ReviewID) error
	// DeleteByOwner removes every review owned by the user and reports how
	// many were deleted. Used by account withdrawal.
	DeleteByOwner(ctx context.Context, ownerID id.UserID) (int, error)
}
