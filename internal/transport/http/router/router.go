package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phonebook-app/accounts-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateAvatar(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
}

type ContactHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Users    UserHandler
	Contacts ContactHandler

	AuthMW func(http.Handler) http.Handler

	// AvatarDir, when set, is served read-only under /avatars.
	AvatarDir string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.Contacts == nil {
		return nil, fmt.Errorf("nil Contacts handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", deps.Users.Signup)
		r.Post("/login", deps.Users.Login)
		r.Get("/", deps.Users.List)

		// --- Email verification ---
		r.Post("/verify/{token}", deps.Users.Verify)
		r.Get("/verify", deps.Users.Resend)

		// --- Session-guarded ---
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/logout", deps.Users.Logout)
			r.Get("/current", deps.Users.Current)
			r.Patch("/avatars", deps.Users.UpdateAvatar)
		})
	})

	r.Route("/api/contacts", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Get("/", deps.Contacts.List)
		r.Post("/", deps.Contacts.Add)
		r.Get("/{contactId}", deps.Contacts.Get)
		r.Put("/{contactId}", deps.Contacts.Update)
		r.Delete("/{contactId}", deps.Contacts.Remove)
	})

	if deps.AvatarDir != "" {
		fs := http.StripPrefix("/avatars/", http.FileServer(http.Dir(deps.AvatarDir)))
		r.Get("/avatars/*", fs.ServeHTTP)
	}

	return r, nil
}
