package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"pawboard/internal/auth/models"
	"pawboard/internal/auth/service/mocks"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestWithdraw() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	user := &models.User{ID: userID, Email: "owner@example.com", Nickname: "mochi"}

	s.Run("nil id is rejected", func() {
		err := s.service.Withdraw(ctx, id.UserID(uuid.Nil))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("missing account is not found", func() {
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(nil, sentinel.ErrNotFound)

		err := s.service.Withdraw(ctx, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("content deleted, then account", func() {
		gomock.InOrder(
			s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil),
			s.mockContentDeleter.EXPECT().DeleteByOwner(gomock.Any(), userID).Return(3, nil),
			s.mockUserStore.EXPECT().Delete(gomock.Any(), userID).Return(nil),
		)
		s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

		err := s.service.Withdraw(ctx, userID)
		s.Require().NoError(err)
	})

	s.Run("content deletion failure leaves the account intact", func() {
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		s.mockContentDeleter.EXPECT().DeleteByOwner(gomock.Any(), userID).Return(0, errors.New("store down"))
		// No Delete expectation: the account must survive for a retry.

		err := s.service.Withdraw(ctx, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("account delete failure is internal", func() {
		s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		s.mockContentDeleter.EXPECT().DeleteByOwner(gomock.Any(), userID).Return(0, nil)
		s.mockUserStore.EXPECT().Delete(gomock.Any(), userID).Return(errors.New("write fail"))

		err := s.service.Withdraw(ctx, userID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// Every registered content store gets the cascade, not just the first.
func (s *ServiceSuite) TestWithdraw_FansOutToAllContentStores() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	user := &models.User{ID: userID, Email: "owner@example.com"}

	second := mocks.NewMockContentDeleter(s.ctrl)
	s.service = NewService(s.mockUserStore, s.hasher,
		WithContentDeleters(s.mockContentDeleter, second),
	)

	s.mockUserStore.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
	s.mockContentDeleter.EXPECT().DeleteByOwner(gomock.Any(), userID).Return(2, nil)
	second.EXPECT().DeleteByOwner(gomock.Any(), userID).Return(1, nil)
	s.mockUserStore.EXPECT().Delete(gomock.Any(), userID).Return(nil)

	s.Require().NoError(s.service.Withdraw(ctx, userID))
}
