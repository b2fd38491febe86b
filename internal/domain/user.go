package domain

// DefaultSubscription is assigned when signup does not specify a tier.
const DefaultSubscription = "starter"

// User is the account record owned by the user repository.
// PasswordHash and VerificationToken must never be serialized to clients.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Subscription string
	AvatarURL    string

	// VerificationToken is non-empty exactly while the account is unverified.
	VerificationToken string
	Verified          bool

	// SessionToken holds the last issued session token; cleared on logout.
	SessionToken string
}
