package account

import (
	"context"
	"errors"
	"testing"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

func TestCurrent_ReturnsProjection(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "a@x.com", Subscription: "pro", Verified: true})

	res, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if res.Email != "a@x.com" || res.Subscription != "pro" {
		t.Fatalf("unexpected projection: %+v", res)
	}
}

func TestCurrent_DeletedAccount_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _, _ := newSvcForTest(t)

	_, err := svc.Current(context.Background(), "gone")
	requireDomainCode(t, err, "unauthorized")
}

func TestUpdateAvatar_Success_OverwritesURL(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "a@x.com", AvatarURL: "https://www.gravatar.com/avatar/x", Verified: true})

	url, err := svc.UpdateAvatar(context.Background(), "u1", "/tmp/upload-123")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if url != "/avatars/u1.jpg" {
		t.Fatalf("unexpected avatar URL %q", url)
	}

	u, _, _ := users.FindByID(context.Background(), "u1")
	if u.AvatarURL != url {
		t.Fatalf("expected avatar URL persisted, got %q", u.AvatarURL)
	}
}

func TestUpdateAvatar_DeletedAccount_Unauthorized_NoProcessing(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, proc, _ := newSvcForTest(t)

	_, err := svc.UpdateAvatar(context.Background(), "gone", "/tmp/upload-123")
	requireDomainCode(t, err, "unauthorized")
	if len(proc.calls) != 0 {
		t.Fatalf("processor must not run for a missing account")
	}
}

func TestUpdateAvatar_ProcessingFailure_Propagates(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, proc, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "a@x.com", AvatarURL: "old", Verified: true})
	proc.processFn = func(string, string) (string, error) {
		return "", domain.ErrAvatarProcessing(errors.New("bad image"))
	}

	_, err := svc.UpdateAvatar(context.Background(), "u1", "/tmp/upload-123")
	requireDomainCode(t, err, "avatar_processing_failed")

	u, _, _ := users.FindByID(context.Background(), "u1")
	if u.AvatarURL != "old" {
		t.Fatalf("failed processing must not change the stored URL")
	}
}

func TestLogout_ClearsSessionMarker(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "a@x.com", Verified: true, SessionToken: "jwt:u1"})

	if err := svc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	u, _, _ := users.FindByID(context.Background(), "u1")
	if u.SessionToken != "" {
		t.Fatalf("expected session marker cleared")
	}
}

func TestLogout_DeletedAccount_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _, _, _, _, _, _ := newSvcForTest(t)

	err := svc.Logout(context.Background(), "gone")
	requireDomainCode(t, err, "unauthorized")
}

func TestListUsers_OmitsSecrets(t *testing.T) {
	t.Parallel()

	svc, users, _, _, _, _, _ := newSvcForTest(t)
	users.put(domain.User{
		ID: "u1", Email: "a@x.com", PasswordHash: "hash:pw",
		Subscription: "starter", VerificationToken: "tok",
	})

	views, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one view, got %d", len(views))
	}
	if views[0].Email != "a@x.com" || views[0].ID != "u1" {
		t.Fatalf("unexpected view: %+v", views[0])
	}
}
