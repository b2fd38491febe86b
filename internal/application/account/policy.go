package account

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// passwordSymbols is the fixed set of accepted special characters.
const passwordSymbols = "@$!%*#?&"

// checkPasswordPolicy enforces the signup password rules. It runs in the
// service, after the duplicate-email check, so a taken email reports a
// conflict even when the password is malformed.
func checkPasswordPolicy(password string) error {
	if len(password) < 8 {
		return domain.ErrWeakPassword("password must contain at least 8 characters")
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return domain.ErrWeakPassword("password contains characters outside letters, digits and " + passwordSymbols)
		}
	}

	switch {
	case !hasLetter:
		return domain.ErrWeakPassword("password must contain at least one letter")
	case !hasDigit:
		return domain.ErrWeakPassword("password must contain at least one digit")
	case !hasSymbol:
		return domain.ErrWeakPassword("password must contain at least one of " + passwordSymbols)
	}
	return nil
}

// checkEmail validates the address format. Transport-level DTOs validate
// emails too; this guard keeps the ordering contract of Signup independent
// of the transport.
func checkEmail(email string) error {
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrInvalidEmail()
	}
	return nil
}
