package account

import (
	"context"
	"strings"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// Verify consumes a verification token: it flips the account to verified
// and clears the stored token, which is what makes the token single-use.
// A token that matches no account (including one already consumed) is a
// not-found.
func (s *Service) Verify(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.ErrVerifyTokenNotFound()
	}

	u, found, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		return domain.ErrRepository(err)
	}
	if !found {
		return domain.ErrVerifyTokenNotFound()
	}

	u.Verified = true
	u.VerificationToken = ""
	if err := s.users.Save(ctx, u); err != nil {
		return domain.ErrRepository(err)
	}
	return nil
}

// ResendVerification re-dispatches the verification email with the token
// already stored on the account. The token is reused, not rotated.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return err
	}

	u, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrRepository(err)
	}
	if !found {
		return domain.ErrUserNotFound()
	}
	if u.Verified {
		return domain.ErrAlreadyVerified()
	}

	s.sendVerification(u.Email, u.VerificationToken)
	return nil
}
