package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

// UserRepo is the in-memory account store used in dev and tests.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	return u, ok, nil
}

func (r *UserRepo) FindByVerificationToken(ctx context.Context, token string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if token == "" {
		return domain.User{}, false, nil
	}
	for _, u := range r.byID {
		if u.VerificationToken == token {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return errors.New("memory: user id must be set")
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.ErrEmailAlreadyExists()
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; !ok {
		return errors.New("memory: save of unknown user")
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}
