package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, email, phone FROM contacts ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (domain.Contact, bool, error) {
	var c domain.Contact
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone FROM contacts WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Contact{}, false, nil
		}
		return domain.Contact{}, false, err
	}
	return c, true, nil
}

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO contacts (id, name, email, phone) VALUES ($1, $2, $3, $4)",
		c.ID, c.Name, c.Email, c.Phone,
	)
	return err
}

func (r *ContactRepo) Update(ctx context.Context, c domain.Contact) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contacts SET name = $2, email = $3, phone = $4 WHERE id = $1",
		c.ID, c.Name, c.Email, c.Phone,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("postgres: update of unknown contact")
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
