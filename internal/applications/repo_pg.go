package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resume-studio/internal/shared/auth"
)

type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const applicationColumns = `j.id, j.profile_id, j.user_id, j.job_description, j.job_title, j.company_name,
  j.generated_summary, j.generated_experience, j.generated_skills, j.document_key, j.document_name,
  j.document_size, j.status, j.created_at, j.rejected_at, j.withdrawn_at,
  p.first_name || ' ' || p.last_name, p.owner_id`

const applicationFrom = ` FROM job_applications j JOIN profiles p ON p.id = j.profile_id`

func (r *PGRepo) Create(ctx context.Context, app JobApplication) (JobApplication, error) {
	experience, err := json.Marshal(app.GeneratedExperience)
	if err != nil {
		return JobApplication{}, err
	}
	skills, err := json.Marshal(app.GeneratedSkills)
	if err != nil {
		return JobApplication{}, err
	}
	const insert = `
INSERT INTO job_applications (id, profile_id, user_id, job_description, job_title, company_name,
  generated_summary, generated_experience, generated_skills, document_key, document_name, document_size,
  status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.DB.ExecContext(ctx, insert,
		app.ID,
		app.ProfileID,
		app.UserID,
		app.JobDescription,
		nullableString(app.JobTitle),
		nullableString(app.CompanyName),
		nullableString(app.GeneratedSummary),
		experience,
		skills,
		nullableString(app.DocumentKey),
		nullableString(app.DocumentName),
		nullableInt(app.DocumentSize),
		string(app.Status),
		app.CreatedAt,
	)
	if err != nil {
		return JobApplication{}, err
	}
	return app, nil
}

func (r *PGRepo) Get(ctx context.Context, p auth.Principal, id string) (JobApplication, error) {
	w := newWhere()
	w.visibleTo(p)
	w.add("j.id = ?", id)
	query := `SELECT ` + applicationColumns + applicationFrom + w.sql()
	return scanApplication(r.DB.QueryRowContext(ctx, query, w.args...))
}

func (r *PGRepo) List(ctx context.Context, p auth.Principal, f Filter) ([]JobApplication, error) {
	f.Normalize()
	w := filterWhere(p, f)
	query := `SELECT ` + applicationColumns + applicationFrom + w.sql() +
		` ORDER BY j.created_at DESC` + w.bind(` LIMIT ?`, f.Limit) + w.bind(` OFFSET ?`, f.Offset)
	rows, err := r.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []JobApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) Count(ctx context.Context, p auth.Principal, f Filter) (int, error) {
	w := filterWhere(p, f)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*)`+applicationFrom+w.sql(), w.args...).Scan(&n)
	return n, err
}

func (r *PGRepo) Transition(ctx context.Context, id string, to Status, at time.Time) (JobApplication, error) {
	var column string
	switch to {
	case StatusRejected:
		column = "rejected_at"
	case StatusWithdrawn:
		column = "withdrawn_at"
	default:
		return JobApplication{}, fmt.Errorf("%w: cannot move to %s", ErrInvalidTransition, to)
	}

	query := `
WITH updated AS (
  UPDATE job_applications SET status = $2, ` + column + ` = $3
  WHERE id = $1 AND status = 'active'
  RETURNING *
)
SELECT ` + strings.ReplaceAll(applicationColumns, "j.", "u.") + `
FROM updated u JOIN profiles p ON p.id = u.profile_id`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, id, string(to), at))
	if !errors.Is(err, ErrNotFound) {
		return app, err
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM job_applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return JobApplication{}, err
	}
	if exists {
		return JobApplication{}, ErrInvalidTransition
	}
	return JobApplication{}, ErrNotFound
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
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

// where accumulates AND-ed conditions with positional parameters.
type where struct {
	conds []string
	args  []any
}

func newWhere() *where { return &where{} }

// add appends a condition; each ? becomes the next $n.
func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, w.bind(cond, args...))
}

func (w *where) bind(fragment string, args ...any) string {
	for _, a := range args {
		w.args = append(w.args, a)
		fragment = strings.Replace(fragment, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	return fragment
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *where) visibleTo(p auth.Principal) {
	switch p.Role {
	case auth.RoleAdmin:
	case auth.RoleManager:
		w.add("p.owner_id = ?", p.UserID)
	case auth.RoleBidder:
		w.add("j.user_id = ?", p.UserID)
	default:
		w.add("FALSE")
	}
}

func filterWhere(p auth.Principal, f Filter) *where {
	w := newWhere()
	w.visibleTo(p)
	if f.ProfileID != "" {
		w.add("j.profile_id = ?", f.ProfileID)
	}
	if f.Status != "" {
		w.add("j.status = ?", string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		w.add("(j.job_title ILIKE ? OR j.company_name ILIKE ? OR j.job_description ILIKE ?)", pattern, pattern, pattern)
	}
	if f.From != nil {
		w.add("j.created_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("j.created_at < ?", *f.To)
	}
	return w
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (JobApplication, error) {
	var (
		app                                    JobApplication
		jobTitle, companyName, summary         sql.NullString
		documentKey, documentName, profileName sql.NullString
		documentSize                           sql.NullInt64
		experience, skills                     []byte
		status                                 string
		rejectedAt, withdrawnAt                sql.NullTime
	)
	err := row.Scan(&app.ID, &app.ProfileID, &app.UserID, &app.JobDescription, &jobTitle, &companyName,
		&summary, &experience, &skills, &documentKey, &documentName, &documentSize, &status, &app.CreatedAt,
		&rejectedAt, &withdrawnAt, &profileName, &app.ProfileOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobApplication{}, ErrNotFound
		}
		return JobApplication{}, err
	}
	app.JobTitle = jobTitle.String
	app.CompanyName = companyName.String
	app.GeneratedSummary = summary.String
	app.DocumentKey = documentKey.String
	app.DocumentName = documentName.String
	app.DocumentSize = documentSize.Int64
	app.ProfileName = strings.TrimSpace(profileName.String)
	app.Status = Status(status)
	if rejectedAt.Valid {
		t := rejectedAt.Time
		app.RejectedAt = &t
	}
	if withdrawnAt.Valid {
		t := withdrawnAt.Time
		app.WithdrawnAt = &t
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &app.GeneratedExperience); err != nil {
			return JobApplication{}, fmt.Errorf("decode generated_experience: %w", err)
		}
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &app.GeneratedSkills); err != nil {
			return JobApplication{}, fmt.Errorf("decode generated_skills: %w", err)
		}
	}
	return app, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}
