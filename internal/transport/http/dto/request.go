package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// -------- Users --------

// SignupRequest intentionally has no format tags: the duplicate-email check
// must run before email/password validation, so the account service owns
// both checks.
type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Subscription string `json:"subscription,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return firstViolation(err)
	}
	return nil
}

type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ResendRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return firstViolation(err)
	}
	return nil
}

// -------- Contacts --------

type AddContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

func (r *AddContactRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return firstViolation(err)
	}
	return nil
}

type UpdateContactRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

func (r *UpdateContactRequest) Validate() error {
	if r.Name == "" && r.Email == "" && r.Phone == "" {
		return domain.ErrInvalidField("body", "at least one of name, email or phone is required")
	}
	if err := validate.Struct(r); err != nil {
		return firstViolation(err)
	}
	return nil
}

// firstViolation converts the first validator violation into a domain error.
func firstViolation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidField("body", "invalid request")
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidEmail()
	default:
		return domain.ErrInvalidField(field, "failed "+fe.Tag()+" validation")
	}
}
