package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eq3-dev/internship-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "first_name", "last_name", "department",
		"sessions", "supervisors", "cvs", "signature", "password_hash",
		"disabled", "created_at", "updated_at",
	})
}

func addStudentRow(rows *sqlmock.Rows, id, username string) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(
		id, username, "Ada", "Lovelace", "Software",
		[]byte(`["Fall 2025"]`), []byte(`{}`), []byte(`[]`), nil, "",
		false, now, now,
	)
}

func TestListActiveInSession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("sessions @> jsonb_build_array($1::text)")).
		WithArgs("Fall 2025").
		WillReturnRows(addStudentRow(studentRows(), "s1", "E001"))

	students, err := repo.ListActiveInSession(context.Background(), "Fall 2025")

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "E001", students[0].Username)
	assert.Equal(t, models.StringList{"Fall 2025"}, students[0].Sessions)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySupervisorArgs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	// The map is keyed by session label, so the label is the first argument.
	mock.ExpectQuery(regexp.QuoteMeta("supervisors ->> $1 = $2")).
		WithArgs("Fall 2025", "sup1").
		WillReturnRows(addStudentRow(studentRows(), "s1", "E001"))

	students, err := repo.ListBySupervisor(context.Background(), "sup1", "Fall 2025")

	require.NoError(t, err)
	assert.Len(t, students, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDsKeysResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	rows := studentRows()
	addStudentRow(rows, "s1", "E001")
	addStudentRow(rows, "s2", "E002")
	mock.ExpectQuery("SELECT .+ FROM students WHERE id IN").
		WithArgs("s1", "s2").
		WillReturnRows(rows)

	result, err := repo.FindByIDs(context.Background(), []string{"s1", "s2"})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "E002", result["s2"].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDsEmptyInput(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewStudentRepository(db)

	result, err := repo.FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestSaveReportsMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), &models.Student{ID: "ghost"})

	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDistinctSessions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("jsonb_array_elements_text(sessions)")).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).
			AddRow("Fall 2025").
			AddRow("Winter 2026"))

	sessions, err := repo.DistinctSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Fall 2025", "Winter 2026"}, sessions)
	require.NoError(t, mock.ExpectationsWereMet())
}
