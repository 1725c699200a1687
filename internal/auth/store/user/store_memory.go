package user

import (
	"context"
	"sync"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

// InMemoryStore keeps the directory lightweight and testable. One mutex
// spans the uniqueness checks and the insert, which is what makes Create
// atomic under concurrent signups.
type InMemoryStore struct {
	mu         sync.RWMutex
	users      map[id.UserID]*models.User
	byEmail    map[string]id.UserID
	byNickname map[string]id.UserID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:      make(map[id.UserID]*models.User),
		byEmail:    make(map[string]id.UserID),
		byNickname: make(map[string]id.UserID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return sentinel.ErrEmailTaken
	}
	if _, taken := s.byNickname[user.Nickname]; taken {
		return sentinel.ErrNicknameTaken
	}

	clone := *user
	s.users[user.ID] = &clone
	s.byEmail[user.Email] = user.ID
	s.byNickname[user.Nickname] = user.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.users[userID]
	return &clone, nil
}

func (s *InMemoryStore) FindByNickname(_ context.Context, nickname string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byNickname[nickname]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.users[userID]
	return &clone, nil
}

func (s *InMemoryStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID]
	if !ok {
		return sentinel.ErrNotFound
	}

	if user.Nickname != current.Nickname {
		if owner, taken := s.byNickname[user.Nickname]; taken && owner != user.ID {
			return sentinel.ErrNicknameTaken
		}
		delete(s.byNickname, current.Nickname)
		s.byNickname[user.Nickname] = user.ID
	}

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}

	delete(s.byEmail, user.Email)
	delete(s.byNickname, user.Nickname)
	delete(s.users, userID)
	return nil
}
