package bootstrap

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/phonebook-app/accounts-service/internal/application/account"
	"github.com/phonebook-app/accounts-service/internal/application/contact"
	"github.com/phonebook-app/accounts-service/internal/config"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/avatar"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/email"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/memory"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/postgres"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/security"
	"github.com/phonebook-app/accounts-service/internal/logger"
	http_handlers "github.com/phonebook-app/accounts-service/internal/transport/http/handlers"
	"github.com/phonebook-app/accounts-service/internal/transport/http/middleware"
	"github.com/phonebook-app/accounts-service/internal/transport/http/response"
	"github.com/phonebook-app/accounts-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	// OpenDB connects to postgres; only called when the config carries a
	// DB address.
	OpenDB func(dsn string) (*sql.DB, error)

	NewRouter func(router.Deps) (http.Handler, error)

	// NewNotifier overrides the email sender; nil picks SMTP or the
	// log-only sender from config.
	NewNotifier func(cfg *config.Config) account.EmailNotifier
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) storage: postgres when configured, in-memory otherwise
	var (
		sqlDB       *sql.DB
		userRepo    account.UserRepo
		contactRepo contact.Repo
	)
	if cfg.DBAddr != "" {
		db, err := deps.OpenDB(cfg.DBAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanupFns = append(cleanupFns, func() { _ = db.Close() })

		if err := postgres.Migrate(context.Background(), db); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}

		sqlDB = db
		userRepo = postgres.NewUserRepo(db)
		contactRepo = postgres.NewContactRepo(db)
		logger.Logger.Info().Msg("postgres connected")
	} else {
		userRepo = memory.NewUserRepo()
		contactRepo = memory.NewContactRepo()
		logger.Logger.Warn().Msg("no DB_ADDR; using in-memory stores")
	}

	// 2) avatar storage must exist before the first upload
	if err := os.MkdirAll(cfg.AvatarDir, 0o755); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	avatars := avatar.NewProcessor(cfg.AvatarDir, cfg.AvatarPublicDir)

	// 3) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, "accounts-service", cfg.SessionTokenTTL)
	issuer := security.NewUUIDTokenIssuer()

	// 4) email
	var notifier account.EmailNotifier
	if deps.NewNotifier != nil {
		notifier = deps.NewNotifier(cfg)
	} else if cfg.SMTPHost != "" {
		notifier = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			BaseURL:  cfg.PublicBaseURL,
		}, logger.Logger)
	} else {
		logger.Logger.Warn().Msg("no SMTP_HOST; verification emails logged only")
		notifier = email.NewLogSender(cfg.PublicBaseURL, logger.Logger)
	}

	// 5) services
	accountSvc := account.NewService(userRepo, hasher, signer, issuer, avatars, notifier)
	contactSvc := contact.NewService(contactRepo)

	// 6) handlers + middleware
	userH := http_handlers.NewUserHandler(accountSvc, "")
	contactH := http_handlers.NewContactHandler(contactSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, userRepo, response.WriteError)

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:    healthH,
		Users:     userH,
		Contacts:  contactH,
		AuthMW:    authMW,
		AvatarDir: cfg.AvatarDir,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		OpenDB:     postgres.Open,
		NewRouter:  router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
