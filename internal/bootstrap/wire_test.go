package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phonebook-app/accounts-service/internal/application/account"
	"github.com/phonebook-app/accounts-service/internal/config"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/email"
	"github.com/phonebook-app/accounts-service/internal/logger"
	"github.com/phonebook-app/accounts-service/internal/transport/http/router"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:              "dev",
		HTTPAddr:         ":0",
		JWTSecret:        "test-secret",
		SessionTokenTTL:  time.Hour,
		BcryptCost:       4,
		AvatarDir:        filepath.Join(t.TempDir(), "avatars"),
		AvatarPublicDir:  "/avatars",
		PublicBaseURL:    "http://localhost:3000",
		HTTPReadTimeout:  time.Second,
		HTTPWriteTimeout: time.Second,
		HTTPIdleTimeout:  time.Second,
	}
}

func testDeps(t *testing.T) Deps {
	return Deps{
		LoadConfig: func() (*config.Config, error) { return testConfig(t), nil },
		NewRouter:  router.New,
		NewNotifier: func(cfg *config.Config) account.EmailNotifier {
			return email.NewLogSender(cfg.PublicBaseURL, logger.Logger)
		},
	}
}

func TestNewServerWithDeps_InMemory(t *testing.T) {
	srv, cleanup, err := NewServerWithDeps(testDeps(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil || cleanup == nil {
		t.Fatalf("expected server and cleanup")
	}
	defer cleanup()

	// Smoke the wired handler without binding a socket.
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: got %d", rec.Code)
	}

	// In-memory setup must report ready without a database.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: got %d", rec.Code)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func TestNewServerWithDeps_SignupRoundTrip(t *testing.T) {
	srv, cleanup, err := NewServerWithDeps(testDeps(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	// empty body is a client error, not a wiring failure
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("signup with no body: got %d", rec.Code)
	}
}

func TestNewServerWithDeps_ConfigLoadFails(t *testing.T) {
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) { return nil, errors.New("bad env") }

	srv, cleanup, err := NewServerWithDeps(deps)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if srv != nil || cleanup != nil {
		t.Fatalf("expected nil server and cleanup")
	}
}

func TestNewServerWithDeps_RouterFails(t *testing.T) {
	deps := testDeps(t)
	deps.NewRouter = func(router.Deps) (http.Handler, error) { return nil, errors.New("router boom") }

	srv, _, err := NewServerWithDeps(deps)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if srv != nil {
		t.Fatalf("expected nil server")
	}
}

func TestNewServerWithDeps_AvatarDirCreated(t *testing.T) {
	cfg := testConfig(t)
	deps := testDeps(t)
	deps.LoadConfig = func() (*config.Config, error) { return cfg, nil }

	srv, cleanup, err := NewServerWithDeps(deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()
	_ = srv

	// Upload staging depends on the directory existing before the first request.
	info, err := os.Stat(cfg.AvatarDir)
	if err != nil {
		t.Fatalf("avatar dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("avatar path is not a directory")
	}
}
