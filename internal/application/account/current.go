package account

import (
	"context"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

type CurrentResult struct {
	Email        string
	Subscription string
}

// Current returns the authenticated caller's projection. The account is
// fetched and checked explicitly; claims alone are not trusted to still
// reference an existing account.
func (s *Service) Current(ctx context.Context, userID string) (CurrentResult, error) {
	u, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return CurrentResult{}, domain.ErrRepository(err)
	}
	if !found {
		return CurrentResult{}, domain.ErrUnauthorized()
	}

	return CurrentResult{
		Email:        u.Email,
		Subscription: u.Subscription,
	}, nil
}

// ListUsers returns a secret-free projection of every account.
func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.ErrRepository(err)
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{
			ID:           u.ID,
			Email:        u.Email,
			Subscription: u.Subscription,
			AvatarURL:    u.AvatarURL,
			Verified:     u.Verified,
		})
	}
	return views, nil
}

// UserView is the listing projection; it never carries credentials or
// verification tokens.
type UserView struct {
	ID           string
	Email        string
	Subscription string
	AvatarURL    string
	Verified     bool
}
