package account

import (
	"context"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// Logout clears the session marker on the account. The JWT itself stays
// valid until expiry; existence of the account is what the auth guard
// checks, so clearing the marker is a bookkeeping write, not a revocation
// list.
func (s *Service) Logout(ctx context.Context, userID string) error {
	u, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.ErrRepository(err)
	}
	if !found {
		return domain.ErrUnauthorized()
	}

	u.SessionToken = ""
	if err := s.users.Save(ctx, u); err != nil {
		return domain.ErrRepository(err)
	}
	return nil
}
