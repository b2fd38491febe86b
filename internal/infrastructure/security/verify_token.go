package security

import "github.com/google/uuid"

// UUIDTokenIssuer produces opaque verification tokens. UUIDv4 gives the
// 128-bit randomness the single-use contract relies on; uniqueness is not
// re-checked against stored tokens.
type UUIDTokenIssuer struct{}

func NewUUIDTokenIssuer() UUIDTokenIssuer { return UUIDTokenIssuer{} }

func (UUIDTokenIssuer) Issue() string { return uuid.NewString() }
