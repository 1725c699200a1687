package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"pawboard/internal/auth/models"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestSignUp_Validation() {
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.SignUpRequest
	}{
		{"missing email", models.SignUpRequest{Password: "secret", Nickname: "mochi"}},
		{"missing password", models.SignUpRequest{Email: "a@b.com", Nickname: "mochi"}},
		{"missing nickname", models.SignUpRequest{Email: "a@b.com", Password: "secret"}},
		{"whitespace email", models.SignUpRequest{Email: "   ", Password: "secret", Nickname: "mochi"}},
		{"whitespace nickname", models.SignUpRequest{Email: "a@b.com", Password: "secret", Nickname: "  "}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			user, err := s.service.SignUp(ctx, tc.req)
			s.Require().Error(err)
			s.Nil(user)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func (s *ServiceSuite) TestSignUp_Success() {
	ctx := context.Background()

	var created *models.User
	s.mockUserStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.User) error {
			created = user
			return nil
		})
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	user, err := s.service.SignUp(ctx, models.SignUpRequest{
		Email:    "owner@example.com",
		Password: "hunter2!",
		Nickname: "mochi",
	})
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(created, user)

	s.False(user.ID.IsNil())
	s.Equal("owner@example.com", user.Email)
	s.Equal("mochi", user.Nickname)
	s.Equal(models.RoleUser, user.Role)

	s.NotEqual("hunter2!", user.PasswordHash)
	s.True(s.hasher.Verify("hunter2!", user.PasswordHash))
}

func (s *ServiceSuite) TestSignUp_TrimsInput() {
	ctx := context.Background()

	s.mockUserStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	user, err := s.service.SignUp(ctx, models.SignUpRequest{
		Email:    "  owner@example.com  ",
		Password: "hunter2!",
		Nickname: "  mochi  ",
	})
	s.Require().NoError(err)
	s.Equal("owner@example.com", user.Email)
	s.Equal("mochi", user.Nickname)
}

func (s *ServiceSuite) TestSignUp_Duplicates() {
	ctx := context.Background()
	req := models.SignUpRequest{Email: "owner@example.com", Password: "hunter2!", Nickname: "mochi"}

	s.Run("duplicate email", func() {
		s.mockUserStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrEmailTaken)

		user, err := s.service.SignUp(ctx, req)
		s.Require().Error(err)
		s.Nil(user)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.True(errors.Is(err, sentinel.ErrEmailTaken))
		s.False(errors.Is(err, sentinel.ErrNicknameTaken))
	})

	s.Run("duplicate nickname", func() {
		s.mockUserStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sentinel.ErrNicknameTaken)

		user, err := s.service.SignUp(ctx, req)
		s.Require().Error(err)
		s.Nil(user)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.True(errors.Is(err, sentinel.ErrNicknameTaken))
	})

	s.Run("store failure is internal", func() {
		s.mockUserStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := s.service.SignUp(ctx, req)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
