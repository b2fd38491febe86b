package account

import (
	"context"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

type LoginResult struct {
	Token        string
	Email        string
	Subscription string
}

// Login authenticates a verified account and issues a session token.
// An unknown email is a not-found; a wrong password and an unverified
// account both come back as unauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, domain.ErrRepository(err)
	}
	if !found {
		return LoginResult{}, domain.ErrUserNotFound()
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if !u.Verified {
		return LoginResult{}, domain.ErrEmailNotVerified()
	}

	token, err := s.signer.SignSessionToken(u.ID, u.Email, u.Subscription)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}

	u.SessionToken = token
	if err := s.users.Save(ctx, u); err != nil {
		return LoginResult{}, domain.ErrRepository(err)
	}

	return LoginResult{
		Token:        token,
		Email:        u.Email,
		Subscription: u.Subscription,
	}, nil
}
