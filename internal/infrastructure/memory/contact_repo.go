package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// ContactRepo is the in-memory contact store used in dev and tests.
type ContactRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Contact
}

func NewContactRepo() *ContactRepo {
	return &ContactRepo{byID: make(map[string]domain.Contact)}
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Contact, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (domain.Contact, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	return c, ok, nil
}

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		return errors.New("memory: contact id must be set")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ContactRepo) Update(ctx context.Context, c domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return errors.New("memory: update of unknown contact")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}
