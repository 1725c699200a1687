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

func strPtr(s string) *string { return &s }

func (s *ServiceSuite) TestGetUser() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	user := &models.User{ID: userID, Email: "owner@example.com", Nickname: "mochi"}

	s.Run("nil id is rejected", func() {
		_, err := s.service.GetUser(ctx, id.UserID(uuid.Nil))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("missing account is not found", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetUser(ctx, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("found", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(user, nil)

		got, err := s.service.GetUser(ctx, userID)
		s.Require().NoError(err)
		s.Equal(user, got)
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	existing := func() *models.User {
		return &models.User{ID: userID, Email: "owner@example.com", Nickname: "mochi", PasswordHash: "hash"}
	}

	s.Run("empty patch is rejected", func() {
		_, err := s.service.UpdateProfile(ctx, userID, models.ProfilePatch{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("blank nickname is rejected", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(existing(), nil)

		_, err := s.service.UpdateProfile(ctx, userID, models.ProfilePatch{Nickname: strPtr("   ")})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("nickname and picture updated, credentials untouched", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(existing(), nil)
		s.mockUserStore.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, user *models.User) error {
				s.Equal("tofu", user.Nickname)
				s.Equal("https://cdn.example.com/tofu.png", user.ProfilePicture)
				s.Equal("hash", user.PasswordHash)
				s.Equal("owner@example.com", user.Email)
				return nil
			})

		user, err := s.service.UpdateProfile(ctx, userID, models.ProfilePatch{
			Nickname:       strPtr("tofu"),
			ProfilePicture: strPtr("https://cdn.example.com/tofu.png"),
		})
		s.Require().NoError(err)
		s.Equal("tofu", user.Nickname)
	})

	s.Run("nickname conflict", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(existing(), nil)
		s.mockUserStore.EXPECT().Update(ctx, gomock.Any()).Return(sentinel.ErrNicknameTaken)

		_, err := s.service.UpdateProfile(ctx, userID, models.ProfilePatch{Nickname: strPtr("taken")})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("account vanished mid-update", func() {
		s.mockUserStore.EXPECT().FindByID(ctx, userID).Return(existing(), nil)
		s.mockUserStore.EXPECT().Update(ctx, gomock.Any()).Return(sentinel.ErrNotFound)

		_, err := s.service.UpdateProfile(ctx, userID, models.ProfilePatch{Nickname: strPtr("tofu")})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestCheckNickname() {
	ctx := context.Background()

	s.Run("empty nickname is rejected", func() {
		_, err := s.service.CheckNickname(ctx, "  ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("free nickname", func() {
		s.mockUserStore.EXPECT().FindByNickname(ctx, "mochi").Return(nil, sentinel.ErrNotFound)

		taken, err := s.service.CheckNickname(ctx, "mochi")
		s.Require().NoError(err)
		s.False(taken)
	})

	s.Run("taken nickname", func() {
		s.mockUserStore.EXPECT().FindByNickname(ctx, "mochi").Return(&models.User{Nickname: "mochi"}, nil)

		taken, err := s.service.CheckNickname(ctx, "mochi")
		s.Require().NoError(err)
		s.True(taken)
	})

	s.Run("store failure is internal", func() {
		s.mockUserStore.EXPECT().FindByNickname(ctx, "mochi").Return(nil, errors.New("db down"))

		_, err := s.service.CheckNickname(ctx, "mochi")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
