package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"pawboard/internal/auth/models"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestLogIn_Validation() {
	ctx := context.Background()

	_, err := s.service.LogIn(ctx, "", "secret")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = s.service.LogIn(ctx, "owner@example.com", "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestLogIn_Classification() {
	ctx := context.Background()

	hash, err := s.hasher.Hash("correct-horse")
	s.Require().NoError(err)
	user := &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        "owner@example.com",
		Nickname:     "mochi",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	s.Run("unknown email", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, sentinel.ErrNotFound)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.LogIn(ctx, "ghost@example.com", "whatever")
		s.Require().NoError(err)
		s.False(result.Success())
		s.Equal(models.LogInFailureEmailNotFound, result.Failure)
		s.Nil(result.User)
	})

	s.Run("wrong password", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.LogIn(ctx, user.Email, "wrong-horse")
		s.Require().NoError(err)
		s.False(result.Success())
		s.Equal(models.LogInFailurePasswordMismatch, result.Failure)
		s.Nil(result.User)
	})

	s.Run("success", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := s.service.LogIn(ctx, user.Email, "correct-horse")
		s.Require().NoError(err)
		s.True(result.Success())
		s.Equal(user.ID, result.User.ID)
	})

	s.Run("store failure is internal, not a failure reason", func() {
		s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(nil, errors.New("db down"))

		_, err := s.service.LogIn(ctx, user.Email, "correct-horse")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// A login attempt against a malformed stored hash must behave like a
// mismatch, not an error: the caller never learns the hash was bad.
func (s *ServiceSuite) TestLogIn_MalformedHashIsMismatch() {
	ctx := context.Background()
	user := &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        "owner@example.com",
		PasswordHash: "not-a-bcrypt-hash",
	}

	s.mockUserStore.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	result, err := s.service.LogIn(ctx, user.Email, "anything")
	s.Require().NoError(err)
	s.Equal(models.LogInFailurePasswordMismatch, result.Failure)
}
