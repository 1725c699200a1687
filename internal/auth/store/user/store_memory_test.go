package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
	"pawboard/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) newUser(email, nickname string) *models.User {
	user, err := models.NewUser(id.NewUserID(), email, nickname, "$2a$10$fakehash", time.Now())
	s.Require().NoError(err)
	return user
}

func (s *InMemoryStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds user by ID, email, and nickname", func() {
		user := s.newUser("jane@example.com", "jane")
		s.Require().NoError(s.store.Create(s.ctx, user))

		byID, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user.Email, byID.Email)

		byEmail, err := s.store.FindByEmail(s.ctx, "jane@example.com")
		s.Require().NoError(err)
		s.Equal(user.ID, byEmail.ID)

		byNickname, err := s.store.FindByNickname(s.ctx, "jane")
		s.Require().NoError(err)
		s.Equal(user.ID, byNickname.ID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown email", func() {
		_, err := s.store.FindByEmail(s.ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestUniqueness() {
	s.Run("rejects duplicate email regardless of nickname", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("dup@example.com", "first")))

		err := s.store.Create(s.ctx, s.newUser("dup@example.com", "second"))
		s.Require().ErrorIs(err, sentinel.ErrEmailTaken)
	})

	s.Run("rejects duplicate nickname", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("a@example.com", "taken")))

		err := s.store.Create(s.ctx, s.newUser("b@example.com", "taken"))
		s.Require().ErrorIs(err, sentinel.ErrNicknameTaken)
	})

	s.Run("email matching is case-sensitive as stored", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("Case@example.com", "case")))

		_, err := s.store.FindByEmail(s.ctx, "case@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestUpdate() {
	s.Run("updates nickname and reindexes it", func() {
		user := s.newUser("update@example.com", "before")
		s.Require().NoError(s.store.Create(s.ctx, user))

		user.Nickname = "after"
		s.Require().NoError(s.store.Update(s.ctx, user))

		_, err := s.store.FindByNickname(s.ctx, "before")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		found, err := s.store.FindByNickname(s.ctx, "after")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("rejects nickname already owned by someone else", func() {
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("one@example.com", "one")))
		other := s.newUser("two@example.com", "two")
		s.Require().NoError(s.store.Create(s.ctx, other))

		other.Nickname = "one"
		s.Require().ErrorIs(s.store.Update(s.ctx, other), sentinel.ErrNicknameTaken)
	})

	s.Run("returns ErrNotFound for unknown user", func() {
		ghost := s.newUser("ghost@example.com", "ghost")
		s.Require().ErrorIs(s.store.Update(s.ctx, ghost), sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestDeletion() {
	s.Run("deletes user and frees email and nickname", func() {
		user := s.newUser("gone@example.com", "gone")
		s.Require().NoError(s.store.Create(s.ctx, user))
		s.Require().NoError(s.store.Delete(s.ctx, user.ID))

		_, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		// A withdrawn account's email and nickname are reusable.
		s.Require().NoError(s.store.Create(s.ctx, s.newUser("gone@example.com", "gone")))
	})

	s.Run("returns ErrNotFound when deleting a non-existent user", func() {
		s.Require().ErrorIs(s.store.Delete(s.ctx, id.NewUserID()), sentinel.ErrNotFound)
	})
}
