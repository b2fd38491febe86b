package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phonebook-app/accounts-service/internal/application/account"
	"github.com/phonebook-app/accounts-service/internal/domain"
)

// JWTSigner is the session token service. The secret is injected here once
// at construction; nothing else in the process holds it.
type JWTSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTSigner(secret, issuer string, ttl time.Duration) *JWTSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type sessionClaims struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) SignSessionToken(userID, email, subscription string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:        email,
		Subscription: subscription,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

func (s *JWTSigner) VerifySessionToken(token string) (account.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return account.SessionClaims{}, domain.ErrTokenExpired()
		}
		return account.SessionClaims{}, domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return account.SessionClaims{}, domain.ErrTokenInvalid()
	}

	exp := time.Time{}
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	return account.SessionClaims{
		UserID:       claims.Subject,
		Email:        claims.Email,
		Subscription: claims.Subscription,
		Exp:          exp,
	}, nil
}
