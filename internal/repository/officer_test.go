package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/testhelpers"
)

func officerRow(id string) *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "territory", "active",
		"preferences", "created_at", "updated_at",
	}).AddRow(
		id, "A. Sharma", "sharma@example.com", "+911234567890", "east", true,
		[]byte(`{"email":true,"sms":true,"chat":false,"chatOptIn":false}`),
		now, now,
	)
}

func newOfficerRepo(t *testing.T) (*repository.OfficerRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewOfficerRepository(db, testhelpers.NewTestLogger()), mock
}

func TestOfficerRepository_GetByID(t *testing.T) {
	repo, mock := newOfficerRepo(t)

	mock.ExpectQuery("FROM officers WHERE id").
		WithArgs("off-1").
		WillReturnRows(officerRow("off-1"))

	officer, err := repo.GetByID(context.Background(), "off-1")
	require.NoError(t, err)

	assert.Equal(t, "A. Sharma", officer.Name)
	assert.True(t, officer.Preferences.Email)
	assert.True(t, officer.Preferences.SMS)
	assert.False(t, officer.Preferences.ChatOptIn)
}

func TestOfficerRepository_FirstActiveByTerritory(t *testing.T) {
	repo, mock := newOfficerRepo(t)

	mock.ExpectQuery("FROM officers").
		WithArgs("east").
		WillReturnRows(officerRow("off-1"))

	officer, err := repo.FirstActiveByTerritory(context.Background(), "east")
	require.NoError(t, err)
	assert.Equal(t, "east", officer.Territory)
}

func TestOfficerRepository_FirstActiveByTerritory_NoneCovering(t *testing.T) {
	repo, mock := newOfficerRepo(t)

	mock.ExpectQuery("FROM officers").
		WithArgs("west").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FirstActiveByTerritory(context.Background(), "west")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
