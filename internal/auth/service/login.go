package service

import (
	"context"
	"errors"

	"pawboard/internal/auth/models"
	"pawboard/internal/platform/audit"
	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
	"pawboard/pkg/platform/sentinel"
)

// LogIn checks the credentials and returns a classified outcome: success
// with the account, or a failure reason distinguishing unknown email from
// a wrong password. Nothing beyond that classification leaks; the stored
// hash never leaves this layer. Token minting is the caller's job.
func (s *Service) LogIn(ctx context.Context, email, plaintext string) (models.LogInResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.LogIn")
	defer span.End()

	if email == "" || plaintext == "" {
		return models.LogInResult{}, dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogin(string(models.LogInFailureEmailNotFound))
			s.logAudit(ctx, audit.ActionLoginFailed, id.UserID{}, email, string(models.LogInFailureEmailNotFound))
			return models.LogInResult{Failure: models.LogInFailureEmailNotFound}, nil
		}
		return models.LogInResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.metrics.IncrementLogin(string(models.LogInFailurePasswordMismatch))
		s.logAudit(ctx, audit.ActionLoginFailed, user.ID, user.Email, string(models.LogInFailurePasswordMismatch))
		return models.LogInResult{Failure: models.LogInFailurePasswordMismatch}, nil
	}

	s.metrics.IncrementLogin("success")
	s.logAudit(ctx, audit.ActionLoginSucceeded, user.ID, user.Email, "")

	return models.LogInResult{User: user}, nil
}
