package applications

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appCols = []string{
	"id", "profile_id", "user_id", "job_description", "job_title", "company_name", "generated_summary",
	"generated_experience", "generated_skills", "document_key", "document_name", "document_size", "status",
	"created_at", "rejected_at", "withdrawn_at", "profile_name", "owner_id",
}

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoListBuildsFilters(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)

	mock.ExpectQuery(`WHERE j.user_id = \$1 AND j.status = \$2 AND \(j.job_title ILIKE \$3 OR j.company_name ILIKE \$4 OR j.job_description ILIKE \$5\) AND j.created_at >= \$6 ORDER BY j.created_at DESC LIMIT \$7 OFFSET \$8`).
		WithArgs("bid-1", "active", "%50\\%%", "%50\\%%", "%50\\%%", from, DefaultLimit, 0).
		WillReturnRows(sqlmock.NewRows(appCols).AddRow(
			"j1", "p1", "bid-1", "jd", "Engineer", "Acme", "sum",
			[]byte(`[{"company":"Acme","descriptions":["a"]}]`), []byte(`["Go"]`),
			"k/1.docx", "Jane_Doe.docx", int64(42), "active", now, nil, nil, "Jane Doe", "mgr-a",
		))

	items, err := repo.List(context.Background(), bidder1, Filter{Status: StatusActive, Search: "50%", From: &from})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Acme", items[0].GeneratedExperience[0].Company)
	assert.Equal(t, "k/1.docx", items[0].DocumentKey)
	assert.EqualValues(t, 42, items[0].DocumentSize)
	assert.Equal(t, "mgr-a", items[0].ProfileOwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCountForManager(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM job_applications j JOIN profiles p ON p.id = j.profile_id WHERE p.owner_id = \$1 AND j.profile_id = \$2`).
		WithArgs("mgr-a", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background(), managerA, Filter{ProfileID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoTransitionFromFinalState(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Now().UTC()
	mock.ExpectQuery("UPDATE job_applications SET status = \\$2, rejected_at = \\$3").
		WithArgs("j1", "rejected", at).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("j1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.Transition(context.Background(), "j1", StatusRejected, at)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoTransitionMissing(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Now().UTC()
	mock.ExpectQuery("withdrawn_at = \\$3").WithArgs("j9", "withdrawn", at).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("j9").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.Transition(context.Background(), "j9", StatusWithdrawn, at)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	app := JobApplication{
		ID: "j1", ProfileID: "p1", UserID: "bid-1", JobDescription: "jd", Status: StatusActive, CreatedAt: now,
		GeneratedSkills: []string{"Go"},
	}
	mock.ExpectExec("INSERT INTO job_applications").
		WithArgs("j1", "p1", "bid-1", "jd", nil, nil, nil, []byte("null"), []byte(`["Go"]`), nil, nil, nil, "active", now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.Create(context.Background(), app)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
