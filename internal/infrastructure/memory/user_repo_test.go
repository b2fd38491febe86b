package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

func TestUserRepo_CreateAndLookups(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	u := domain.User{ID: "u1", Email: "a@x.com", VerificationToken: "tok"}

	if err := r.Create(context.Background(), u); err != nil {
		t.Fatalf("create: %v", err)
	}

	if got, found, _ := r.FindByEmail(context.Background(), "a@x.com"); !found || got.ID != "u1" {
		t.Fatalf("FindByEmail: found=%v got=%+v", found, got)
	}
	if got, found, _ := r.FindByID(context.Background(), "u1"); !found || got.Email != "a@x.com" {
		t.Fatalf("FindByID: found=%v got=%+v", found, got)
	}
	if got, found, _ := r.FindByVerificationToken(context.Background(), "tok"); !found || got.ID != "u1" {
		t.Fatalf("FindByVerificationToken: found=%v got=%+v", found, got)
	}
}

func TestUserRepo_NotFoundIsAbsence(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()

	if _, found, err := r.FindByEmail(context.Background(), "missing@x.com"); found || err != nil {
		t.Fatalf("expected absence without error, found=%v err=%v", found, err)
	}
	if _, found, err := r.FindByID(context.Background(), "missing"); found || err != nil {
		t.Fatalf("expected absence without error, found=%v err=%v", found, err)
	}
	if _, found, err := r.FindByVerificationToken(context.Background(), "missing"); found || err != nil {
		t.Fatalf("expected absence without error, found=%v err=%v", found, err)
	}
}

func TestUserRepo_DuplicateEmail_Conflict(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	_ = r.Create(context.Background(), domain.User{ID: "u1", Email: "a@x.com"})

	err := r.Create(context.Background(), domain.User{ID: "u2", Email: "a@x.com"})
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserRepo_EmptyToken_NeverMatches(t *testing.T) {
	t.Parallel()

	// Verified accounts store an empty token; a blank lookup must not hit them.
	r := NewUserRepo()
	_ = r.Create(context.Background(), domain.User{ID: "u1", Email: "a@x.com", Verified: true})

	if _, found, _ := r.FindByVerificationToken(context.Background(), ""); found {
		t.Fatalf("empty token must not match any account")
	}
}

func TestUserRepo_ConcurrentVerify_ExactlyOneTokenHolder(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	_ = r.Create(context.Background(), domain.User{ID: "u1", Email: "a@x.com", VerificationToken: "tok"})

	// Saves racing on the same account: end state must be consistent
	// (verified, token cleared) regardless of interleaving.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, found, _ := r.FindByVerificationToken(context.Background(), "tok")
			if !found {
				return
			}
			u.Verified = true
			u.VerificationToken = ""
			_ = r.Save(context.Background(), u)
		}()
	}
	wg.Wait()

	u, _, _ := r.FindByID(context.Background(), "u1")
	if !u.Verified || u.VerificationToken != "" {
		t.Fatalf("expected verified account with cleared token, got %+v", u)
	}
}

func TestUserRepo_SaveUnknown_Fails(t *testing.T) {
	t.Parallel()

	r := NewUserRepo()
	if err := r.Save(context.Background(), domain.User{ID: "ghost"}); err == nil {
		t.Fatalf("expected error saving unknown user")
	}
}
