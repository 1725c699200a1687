package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"pawboard/internal/platform/audit"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
)

// Withdraw deletes the account and everything it owns. The transition is
// terminal: there is no soft delete and no recovery. Already-issued
// tokens keep verifying until expiry, which is why every account lookup
// treats a missing user as NotFound rather than trusting claims.
func (s *Service) Withdraw(ctx context.Context, userID id.UserID) error {
	ctx, span := s.tracer.Start(ctx, "auth.Withdraw")
	defer span.End()

	if userID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "user ID required")
	}

	// Capture the account first so the audit trail keeps the email.
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	// Owned content first, concurrently per store. If any deletion fails
	// the account survives, so a retry can finish the job.
	g, gctx := errgroup.WithContext(ctx)
	for _, deleter := range s.content {
		g.Go(func() error {
			_, err := deleter.DeleteByOwner(gctx, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user content")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}

	s.metrics.IncrementUsersDeleted()
	s.logAudit(ctx, audit.ActionUserDeleted, user.ID, user.Email, "")

	return nil
}
