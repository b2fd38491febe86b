package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = "id, email, password_hash, subscription, avatar_url, verification_token, verified, session_token"

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Subscription,
		&u.AvatarURL,
		&u.VerificationToken,
		&u.Verified,
		&u.SessionToken,
	)
	return u, err
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (domain.User, bool, error) {
	q := "SELECT " + userColumns + " FROM users WHERE " + where + " LIMIT 1"
	u, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, false, nil
	}
	return r.findOne(ctx, "email = $1", email)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, false, nil
	}
	return r.findOne(ctx, "id = $1", id)
}

func (r *UserRepo) FindByVerificationToken(ctx context.Context, token string) (domain.User, bool, error) {
	// An empty token marks a verified account and must never match.
	if strings.TrimSpace(token) == "" {
		return domain.User{}, false, nil
	}
	return r.findOne(ctx, "verification_token = $1", token)
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	const q = `
INSERT INTO users (id, email, password_hash, subscription, avatar_url, verification_token, verified, session_token)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO NOTHING
`
	res, err := r.db.ExecContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.Subscription,
		u.AvatarURL, u.VerificationToken, u.Verified, u.SessionToken,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEmailAlreadyExists()
	}
	return nil
}

func (r *UserRepo) Save(ctx context.Context, u domain.User) error {
	const q = `
UPDATE users
SET password_hash = $2,
    subscription = $3,
    avatar_url = $4,
    verification_token = $5,
    verified = $6,
    session_token = $7
WHERE id = $1
`
	res, err := r.db.ExecContext(ctx, q,
		u.ID, u.PasswordHash, u.Subscription,
		u.AvatarURL, u.VerificationToken, u.Verified, u.SessionToken,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("postgres: save of unknown user")
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	q := "SELECT " + userColumns + " FROM users ORDER BY email"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Subscription,
			&u.AvatarURL, &u.VerificationToken, &u.Verified, &u.SessionToken,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
