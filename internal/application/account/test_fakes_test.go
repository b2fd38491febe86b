package account

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]string // email -> userID

	// injected errors (if set, method returns error)
	findErr   error
	createErr error
	saveErr   error

	saved []domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]domain.User{},
		byEmail: map[string]string{},
	}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return domain.User{}, false, f.findErr
	}
	id, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, false, nil
	}
	return f.byID[id], true, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return domain.User{}, false, f.findErr
	}
	u, ok := f.byID[id]
	return u, ok, nil
}

func (f *fakeUserRepo) FindByVerificationToken(ctx context.Context, token string) (domain.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return domain.User{}, false, f.findErr
	}
	if token == "" {
		return domain.User{}, false, nil
	}
	for _, u := range f.byID {
		if u.VerificationToken == token {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) Save(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	f.saved = append(f.saved, u)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	signFn func(id, email, sub string) (string, error)
}

func (f *fakeSigner) SignSessionToken(id, email, sub string) (string, error) {
	if f.signFn != nil {
		return f.signFn(id, email, sub)
	}
	return "jwt:" + id, nil
}

func (f *fakeSigner) VerifySessionToken(token string) (SessionClaims, error) {
	return SessionClaims{}, errors.New("not implemented in fake")
}

type fakeIssuer struct {
	mu     sync.Mutex
	n      int
	issued []string
}

func (f *fakeIssuer) Issue() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	tok := "verify-token-" + strconv.Itoa(f.n)
	f.issued = append(f.issued, tok)
	return tok
}

type fakeProcessor struct {
	processFn func(srcPath, accountID string) (string, error)
	calls     []struct{ src, id string }
}

func (f *fakeProcessor) Process(ctx context.Context, srcPath, accountID string) (string, error) {
	f.calls = append(f.calls, struct{ src, id string }{srcPath, accountID})
	if f.processFn != nil {
		return f.processFn(srcPath, accountID)
	}
	return "/avatars/" + accountID + ".jpg", nil
}

type sentEmail struct {
	email string
	token string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeNotifier) SendVerificationEmail(ctx context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{email: email, token: token})
	return f.err
}

func (f *fakeNotifier) all() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentEmail, len(f.sent))
	copy(out, f.sent)
	return out
}

/*
Shared wiring
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeIssuer, *fakeProcessor, *fakeNotifier) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	issuer := &fakeIssuer{}
	proc := &fakeProcessor{}
	notifier := &fakeNotifier{}

	svc := NewService(users, hasher, signer, issuer, proc, notifier).WithSyncDispatch()
	return svc, users, hasher, signer, issuer, proc, notifier
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}
