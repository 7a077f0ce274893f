package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-studio/internal/shared/auth"
	"resume-studio/internal/shared/storage/db"
	"resume-studio/resume/model"
)

type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const profileColumns = `p.id, p.owner_id, p.first_name, p.last_name, p.title, p.email, p.phone, p.location,
  p.linkedin, p.website, p.summary, p.skills, p.experience, p.education, p.file_name_preference,
  p.created_at, p.updated_at`

// visibleTo is the role filter shared by List and Get; $1 is the role, $2 the user id.
const visibleTo = `(
  $1 = 'admin'
  OR ($1 = 'manager' AND p.owner_id = $2)
  OR ($1 = 'bidder' AND EXISTS (
    SELECT 1 FROM profile_assignments a WHERE a.profile_id = p.id AND a.bidder_id = $2))
)`

func (r *PGRepo) List(ctx context.Context, p auth.Principal) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE ` + visibleTo + ` ORDER BY p.updated_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, string(p.Role), p.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, p auth.Principal, id string) (model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles p WHERE p.id = $3 AND ` + visibleTo
	return scanProfile(r.DB.QueryRowContext(ctx, query, string(p.Role), p.UserID, id))
}

func (r *PGRepo) Save(ctx context.Context, profile model.Profile) (model.Profile, error) {
	skills, err := json.Marshal(profile.Skills)
	if err != nil {
		return model.Profile{}, err
	}
	experience, err := json.Marshal(profile.Experience)
	if err != nil {
		return model.Profile{}, err
	}
	education, err := json.Marshal(profile.Education)
	if err != nil {
		return model.Profile{}, err
	}

	query := `
INSERT INTO profiles AS p (id, owner_id, first_name, last_name, title, email, phone, location, linkedin, website,
  summary, skills, experience, education, file_name_preference, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
ON CONFLICT (id) DO UPDATE SET
  first_name = EXCLUDED.first_name,
  last_name = EXCLUDED.last_name,
  title = EXCLUDED.title,
  email = EXCLUDED.email,
  phone = EXCLUDED.phone,
  location = EXCLUDED.location,
  linkedin = EXCLUDED.linkedin,
  website = EXCLUDED.website,
  summary = EXCLUDED.summary,
  skills = EXCLUDED.skills,
  experience = EXCLUDED.experience,
  education = EXCLUDED.education,
  file_name_preference = EXCLUDED.file_name_preference,
  updated_at = now()
RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRowContext(ctx, query,
		profile.ID,
		profile.OwnerID,
		profile.FirstName,
		profile.LastName,
		nullableString(profile.Title),
		nullableString(profile.Email),
		nullableString(profile.Phone),
		nullableString(profile.Location),
		nullableString(profile.LinkedIn),
		nullableString(profile.Website),
		nullableString(profile.Summary),
		skills,
		experience,
		education,
		string(profile.FileNamePreference),
	))
}

// Delete relies on ON DELETE CASCADE for assignments and applications. The
// document keys are read in the same transaction so none are missed.
func (r *PGRepo) Delete(ctx context.Context, id string) ([]string, error) {
	var keys []string
	err := db.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT document_key FROM job_applications WHERE profile_id = $1 AND document_key IS NOT NULL`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var key string
			if err := rows.Scan(&key); err != nil {
				return err
			}
			keys = append(keys, key)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
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
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.Profile, error) {
	var (
		p                                                model.Profile
		title, email, phone, location, linkedin, website sql.NullString
		summary                                          sql.NullString
		skills, experience, education                    []byte
		pref                                             string
	)
	err := row.Scan(&p.ID, &p.OwnerID, &p.FirstName, &p.LastName, &title, &email, &phone, &location,
		&linkedin, &website, &summary, &skills, &experience, &education, &pref, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, err
	}
	p.Title = title.String
	p.Email = email.String
	p.Phone = phone.String
	p.Location = location.String
	p.LinkedIn = linkedin.String
	p.Website = website.String
	p.Summary = summary.String
	p.FileNamePreference = model.FileNamePreference(pref)

	for _, col := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"skills", skills, &p.Skills},
		{"experience", experience, &p.Experience},
		{"education", education, &p.Education},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return model.Profile{}, fmt.Errorf("decode profile %s: %w", col.name, err)
		}
	}
	p.Normalize()
	return p, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
