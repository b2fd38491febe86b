package account

import (
	"context"
	"time"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Lookups surface not-found as an absence value (found=false), never as an
error; the error return is reserved for storage failures.
*/
type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (domain.User, bool, error)
	FindByID(ctx context.Context, id string) (domain.User, bool, error)
	FindByVerificationToken(ctx context.Context, token string) (domain.User, bool, error)
	Create(ctx context.Context, u domain.User) error
	Save(ctx context.Context, u domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt. Compare returns nil on match.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// SessionClaims is the identity embedded in a session token.
type SessionClaims struct {
	UserID       string
	Email        string
	Subscription string
	Exp          time.Time
}

/*
TokenSigner
-----------
Issues and verifies signed session tokens (JWT).
Used by the service and the auth middleware.
*/
type TokenSigner interface {
	SignSessionToken(userID, email, subscription string) (string, error)
	VerifySessionToken(token string) (SessionClaims, error)
}

/*
TokenIssuer
-----------
Produces opaque single-use verification tokens.
*/
type TokenIssuer interface {
	Issue() string
}

/*
AvatarProcessor
---------------
Normalizes an uploaded image and persists it under a name derived from the
owning account. Returns the web-servable relative URL.
*/
type AvatarProcessor interface {
	Process(ctx context.Context, srcPath, accountID string) (string, error)
}

/*
EmailNotifier
-------------
Dispatches the verification email. Fire-and-forget from the service's point
of view: delivery failures are the notifier's problem, not the caller's.
*/
type EmailNotifier interface {
	SendVerificationEmail(ctx context.Context, email, verificationToken string) error
}
