package account

import (
	"context"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// UpdateAvatar runs the uploaded file through the avatar processor and
// stores the resulting URL on the account. The account is fetched and
// checked before any file work so a stale session cannot write an orphan
// avatar for a deleted account.
func (s *Service) UpdateAvatar(ctx context.Context, userID, srcPath string) (string, error) {
	u, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", domain.ErrRepository(err)
	}
	if !found {
		return "", domain.ErrUnauthorized()
	}

	avatarURL, err := s.avatars.Process(ctx, srcPath, u.ID)
	if err != nil {
		return "", err
	}

	u.AvatarURL = avatarURL
	if err := s.users.Save(ctx, u); err != nil {
		return "", domain.ErrRepository(err)
	}
	return avatarURL, nil
}
