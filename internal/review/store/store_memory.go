package store

import (
	"context"
	"sort"
	"sync"

	"pawboard/internal/review/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// InMemoryStore keeps reviews in a map. Reads and writes hand out clones
// so callers can never mutate stored state behind the lock.
type InMemoryStore struct {
	mu      sync.RWMutex
	reviews map[id.ReviewID]*models.Review
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		reviews: make(map[id.ReviewID]*models.Review),
	}
}

func (s *InMemoryStore) Create(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reviews[review.ID]; exists {
		return sentinel.ErrConflict
	}
	s.reviews[review.ID] = cloneReview(review)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, reviewID id.ReviewID) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneReview(review), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*models.Review, 0, len(s.reviews))
	for _, review := range s.reviews {
		reviews = append(reviews, cloneReview(review))
	}
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID.String() > reviews[j].ID.String()
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *InMemoryStore) Update(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.reviews[review.ID] = cloneReview(review)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, reviewID id.ReviewID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.reviews, reviewID)
	return nil
}

func (s *InMemoryStore) DeleteByOwner(_ context.Context, ownerID id.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for reviewID, review := range s.reviews {
		if review.OwnerID == ownerID {
			delete(s.reviews, reviewID)
			deleted++
		}
	}
	return deleted, nil
}

func cloneReview(review *models.Review) *models.Review {
	clone := *review
	clone.Images = append([]string(nil), review.Images...)
	return &clone
}
