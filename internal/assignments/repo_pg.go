package assignments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const uniqueViolation = "23505"

func (r *PGRepo) Create(ctx context.Context, a Assignment) (Assignment, error) {
	const query = `
INSERT INTO profile_assignments (id, profile_id, bidder_id, assigned_by, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, profile_id, bidder_id, assigned_by, created_at`
	out, err := scanAssignment(r.DB.QueryRowContext(ctx, query, a.ID, a.ProfileID, a.BidderID, a.AssignedBy))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Assignment{}, ErrConflict
	}
	return out, err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Assignment, error) {
	const query = `SELECT id, profile_id, bidder_id, assigned_by, created_at FROM profile_assignments WHERE id = $1`
	return scanAssignment(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByProfile(ctx context.Context, profileID string) ([]Assignment, error) {
	const query = `
SELECT id, profile_id, bidder_id, assigned_by, created_at
FROM profile_assignments
WHERE profile_id = $1
ORDER BY created_at`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM profile_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ProfileIDsForBidder(ctx context.Context, bidderID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT profile_id FROM profile_assignments WHERE bidder_id = $1`, bidderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (Assignment, error) {
	var a Assignment
	if err := row.Scan(&a.ID, &a.ProfileID, &a.BidderID, &a.AssignedBy, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, ErrNotFound
		}
		return Assignment{}, err
	}
	return a, nil
}
