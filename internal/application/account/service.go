package account

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/phonebook-app/accounts-service/internal/logger"
)

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	signer   TokenSigner
	issuer   TokenIssuer
	avatars  AvatarProcessor
	notifier EmailNotifier
	dispatch func(fn func()) // runs email sends; replaced in tests
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	issuer TokenIssuer,
	avatars AvatarProcessor,
	notifier EmailNotifier,
) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		signer:   signer,
		issuer:   issuer,
		avatars:  avatars,
		notifier: notifier,
		dispatch: func(fn func()) { go fn() },
	}
}

// WithSyncDispatch makes email dispatch synchronous. Tests only.
func (s *Service) WithSyncDispatch() *Service {
	s.dispatch = func(fn func()) { fn() }
	return s
}

// sendVerification dispatches the verification email without coupling the
// account mutation to delivery: errors are logged and dropped.
// The request context is deliberately not reused; the send outlives the request.
func (s *Service) sendVerification(email, token string) {
	s.dispatch(func() {
		if err := s.notifier.SendVerificationEmail(context.Background(), email, token); err != nil {
			logger.Logger.Error().Err(err).Str("email", email).Msg("verification email dispatch failed")
		}
	})
}

// placeholderAvatarURL derives the gravatar-style default avatar for a new
// account from its email.
func placeholderAvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.TrimSpace(strings.ToLower(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=100&d=retro"
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
