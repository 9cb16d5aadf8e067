package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/testhelpers"
)

var sourceRowColumns = []string{
	"id", "domain", "category", "access_method", "crawl_frequency",
	"trust_score", "policy", "crawl_status", "last_crawled", "statistics",
	"added_by", "notes", "created_at", "updated_at",
}

func sourceRow(id, domain string) *sqlmock.Rows {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(sourceRowColumns).AddRow(
		id, domain, "news", "scraping", "daily",
		0.8,
		[]byte(`{"rateLimit":{"requests":1,"period":"second"}}`),
		"active", nil,
		[]byte(`{"totalCrawls":10,"successfulCrawls":9,"failedCrawls":1,"leadsGenerated":4}`),
		"admin", "", now, now,
	)
}

func newSourceRepo(t *testing.T) (*repository.SourceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSourceRepository(db, testhelpers.NewTestLogger()), mock
}

func TestSourceRepository_Create(t *testing.T) {
	repo, mock := newSourceRepo(t)

	mock.ExpectExec("INSERT INTO sources").
		WillReturnResult(sqlmock.NewResult(0, 1))

	source := &models.Source{
		Domain:         "news.example.com",
		Category:       models.CategoryNews,
		CrawlFrequency: models.FrequencyDaily,
		TrustScore:     0.8,
	}
	require.NoError(t, repo.Create(context.Background(), source))

	assert.NotEmpty(t, source.ID)
	assert.Equal(t, models.CrawlPending, source.CrawlStatus)
	assert.Equal(t, "scraping", source.AccessMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceRepository_Create_InvalidSource(t *testing.T) {
	repo, _ := newSourceRepo(t)

	err := repo.Create(context.Background(), &models.Source{Category: models.CategoryNews})
	assert.ErrorContains(t, err, "domain is required")
}

func TestSourceRepository_GetByDomain(t *testing.T) {
	repo, mock := newSourceRepo(t)

	mock.ExpectQuery("FROM sources WHERE domain").
		WithArgs("news.example.com").
		WillReturnRows(sourceRow("src-1", "news.example.com"))

	source, err := repo.GetByDomain(context.Background(), "news.example.com")
	require.NoError(t, err)

	assert.Equal(t, "src-1", source.ID)
	require.NotNil(t, source.Policy.RateLimit)
	assert.Equal(t, 1, source.Policy.RateLimit.Requests)
	assert.Equal(t, 4, source.Statistics.LeadsGenerated)
}

func TestSourceRepository_List_FiltersBySchedule(t *testing.T) {
	repo, mock := newSourceRepo(t)

	mock.ExpectQuery("FROM sources WHERE 1=1 AND crawl_frequency").
		WithArgs("daily", "active").
		WillReturnRows(sourceRow("src-1", "a.com"))

	sources, err := repo.List(context.Background(), repository.SourceFilter{
		Frequency: models.FrequencyDaily,
		Status:    models.CrawlActive,
	})
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "a.com", sources[0].Domain)
}

func TestSourceRepository_RecordCrawl(t *testing.T) {
	tests := []struct {
		name        string
		success     bool
		wantCounter string
	}{
		{name: "success bumps successful counter", success: true, wantCounter: "successfulCrawls"},
		{name: "failure bumps failed counter", success: false, wantCounter: "failedCrawls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newSourceRepo(t)

			mock.ExpectExec("UPDATE sources SET").
				WithArgs("src-1", tt.wantCounter, tt.success).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.RecordCrawl(context.Background(), "src-1", tt.success))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSourceRepository_RecordCrawl_UnknownSource(t *testing.T) {
	repo, mock := newSourceRepo(t)

	mock.ExpectExec("UPDATE sources SET").
		WithArgs("missing", "successfulCrawls", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordCrawl(context.Background(), "missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSourceRepository_IncrementLeadsGenerated(t *testing.T) {
	repo, mock := newSourceRepo(t)

	mock.ExpectExec("UPDATE sources SET").
		WithArgs("src-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementLeadsGenerated(context.Background(), "src-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
