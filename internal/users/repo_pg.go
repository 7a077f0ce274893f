package users

import (
	"context"
	"database/sql"
	"errors"

	"resume-studio/internal/shared/auth"
)

type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const userColumns = `id, email, full_name, picture_url, role, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, email, full_name, picture_url, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  picture_url = EXCLUDED.picture_url,
  updated_at = now()
RETURNING ` + userColumns
	role := user.Role
	if role == "" {
		role = auth.RoleBidder
	}
	return scanUser(r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.PictureURL),
		string(role),
	))
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) ListByRole(ctx context.Context, role auth.Role) ([]User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY full_name NULLS LAST, email`
	rows, err := r.DB.QueryContext(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PGRepo) SetRole(ctx context.Context, userID string, role auth.Role) (User, error) {
	const query = `UPDATE users SET role = $2, updated_at = now() WHERE id = $1 RETURNING ` + userColumns
	return scanUser(r.DB.QueryRowContext(ctx, query, userID, string(role)))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		user       User
		fullName   sql.NullString
		pictureURL sql.NullString
		role       string
	)
	err := row.Scan(&user.ID, &user.Email, &fullName, &pictureURL, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.FullName = fullName.String
	user.PictureURL = pictureURL.String
	user.Role = auth.Role(role)
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
