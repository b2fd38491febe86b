package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// Repo is the persistence port for contact records. Pure record storage:
// not-found is an absence value, errors are storage failures.
type Repo interface {
	List(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id string) (domain.Contact, bool, error)
	Create(ctx context.Context, c domain.Contact) error
	Update(ctx context.Context, c domain.Contact) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Service is a thin pass-through over the repository; contact records carry
// no invariants beyond existence.
type Service struct {
	contacts Repo
}

func NewService(contacts Repo) *Service {
	return &Service{contacts: contacts}
}

func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	out, err := s.contacts.List(ctx)
	if err != nil {
		return nil, domain.ErrRepository(err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Contact, error) {
	c, found, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return domain.Contact{}, domain.ErrRepository(err)
	}
	if !found {
		return domain.Contact{}, domain.ErrContactNotFound()
	}
	return c, nil
}

func (s *Service) Add(ctx context.Context, name, email, phone string) (domain.Contact, error) {
	c := domain.Contact{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Phone: phone,
	}
	if err := s.contacts.Create(ctx, c); err != nil {
		return domain.Contact{}, domain.ErrRepository(err)
	}
	return c, nil
}

// Update patches the provided non-empty fields onto an existing contact.
func (s *Service) Update(ctx context.Context, id, name, email, phone string) (domain.Contact, error) {
	c, found, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return domain.Contact{}, domain.ErrRepository(err)
	}
	if !found {
		return domain.Contact{}, domain.ErrContactNotFound()
	}

	if name != "" {
		c.Name = name
	}
	if email != "" {
		c.Email = email
	}
	if phone != "" {
		c.Phone = phone
	}

	if err := s.contacts.Update(ctx, c); err != nil {
		return domain.Contact{}, domain.ErrRepository(err)
	}
	return c, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	removed, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return domain.ErrRepository(err)
	}
	if !removed {
		return domain.ErrContactNotFound()
	}
	return nil
}
