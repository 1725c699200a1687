package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

func newTestReview(ownerID id.UserID, title string, createdAt time.Time) *models.Review {
	return &models.Review{
		ID:        id.ReviewID(uuid.New()),
		OwnerID:   ownerID,
		Title:     title,
		Content:   "content",
		Rating:    4,
		Images:    []string{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestInMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	review := newTestReview(id.UserID(uuid.New()), "first", time.Now())

	require.NoError(t, store.Create(ctx, review))

	found, err := store.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.Title, found.Title)
	assert.Equal(t, review.Rating, found.Rating)

	_, err = store.FindByID(ctx, id.ReviewID(uuid.New()))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	base := time.Now()

	require.NoError(t, store.Create(ctx, newTestReview(id.UserID(uuid.New()), "old", base.Add(-time.Hour))))
	require.NoError(t, store.Create(ctx, newTestReview(id.UserID(uuid.New()), "new", base)))

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "new", reviews[0].Title)
	assert.Equal(t, "old", reviews[1].Title)
}

func TestInMemoryStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	review := newTestReview(id.UserID(uuid.New()), "before", time.Now())
	require.NoError(t, store.Create(ctx, review))

	review.Rating = 1
	require.NoError(t, store.Update(ctx, review))
	found, err := store.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Rating)

	require.NoError(t, store.Delete(ctx, review.ID))
	assert.ErrorIs(t, store.Delete(ctx, review.ID), sentinel.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, review), sentinel.ErrNotFound)
}

func TestInMemoryStore_DeleteByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	owner := id.UserID(uuid.New())

	require.NoError(t, store.Create(ctx, newTestReview(owner, "one", time.Now())))
	require.NoError(t, store.Create(ctx, newTestReview(owner, "two", time.Now())))
	require.NoError(t, store.Create(ctx, newTestReview(id.UserID(uuid.New()), "kept", time.Now())))

	deleted, err := store.DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	reviews, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
