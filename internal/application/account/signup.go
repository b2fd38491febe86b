package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// SignupResult is what signup exposes to the caller. It deliberately carries
// no credential or verification material.
type SignupResult struct {
	Subscription string
	AvatarURL    string
	Message      string
}

// Signup registers a new unverified account and dispatches the verification
// email. The duplicate-email check runs before password validation: a taken
// email reports a conflict even with a malformed password.
func (s *Service) Signup(ctx context.Context, email, password, subscription string) (SignupResult, error) {
	email = normalizeEmail(email)

	if _, found, err := s.users.FindByEmail(ctx, email); err != nil {
		return SignupResult{}, domain.ErrRepository(err)
	} else if found {
		return SignupResult{}, domain.ErrEmailAlreadyExists()
	}

	if err := checkEmail(email); err != nil {
		return SignupResult{}, err
	}
	if err := checkPasswordPolicy(password); err != nil {
		return SignupResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return SignupResult{}, domain.ErrHashFailed(err)
	}

	if subscription == "" {
		subscription = domain.DefaultSubscription
	}

	u := domain.User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      hash,
		Subscription:      subscription,
		AvatarURL:         placeholderAvatarURL(email),
		VerificationToken: s.issuer.Issue(),
		Verified:          false,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return SignupResult{}, err
	}

	s.sendVerification(u.Email, u.VerificationToken)

	return SignupResult{
		Subscription: u.Subscription,
		AvatarURL:    u.AvatarURL,
		Message:      "Registration successful",
	}, nil
}
