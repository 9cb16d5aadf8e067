package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

const sourceColumns = `id, domain, category, access_method, crawl_frequency,
	trust_score, policy, crawl_status, last_crawled, statistics,
	added_by, notes, created_at, updated_at`

type SourceRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewSourceRepository(db *sql.DB, log logger.Logger) *SourceRepository {
	return &SourceRepository{db: db, logger: log}
}

func (r *SourceRepository) Create(ctx context.Context, source *models.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	source.ID = uuid.New().String()
	now := time.Now()
	source.CreatedAt = now
	source.UpdatedAt = now
	if source.CrawlStatus == "" {
		source.CrawlStatus = models.CrawlPending
	}
	if source.AccessMethod == "" {
		source.AccessMethod = "scraping"
	}

	policyJSON, err := json.Marshal(source.Policy)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	statsJSON, err := json.Marshal(source.Statistics)
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}

	query := `
		INSERT INTO sources (` + sourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(ctx, query,
		source.ID, source.Domain, source.Category, source.AccessMethod,
		source.CrawlFrequency, source.TrustScore, policyJSON,
		source.CrawlStatus, source.LastCrawled, statsJSON,
		source.AddedBy, source.Notes, source.CreatedAt, source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert source: %w", err)
	}
	return nil
}

func (r *SourceRepository) GetByID(ctx context.Context, id string) (*models.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE id = $1`
	return scanSource(r.db.QueryRowContext(ctx, query, id))
}

func (r *SourceRepository) GetByDomain(ctx context.Context, domain string) (*models.Source, error) {
	query := `SELECT ` + sourceColumns + ` FROM sources WHERE domain = $1`
	return scanSource(r.db.QueryRowContext(ctx, query, domain))
}

// SourceFilter selects sources for listing or scheduling.
type SourceFilter struct {
	Category  models.SourceCategory
	Frequency models.CrawlFrequency
	Status    models.CrawlStatus
}

// List returns sources matching the filter in insertion order.
func (r *SourceRepository) List(ctx context.Context, filter SourceFilter) ([]models.Source, error) {
	where := ""
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	if filter.Category != "" {
		add("category", filter.Category)
	}
	if filter.Frequency != "" {
		add("crawl_frequency", filter.Frequency)
	}
	if filter.Status != "" {
		add("crawl_status", filter.Status)
	}

	query := `SELECT ` + sourceColumns + ` FROM sources WHERE 1=1` + where + ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	var sources []models.Source
	for rows.Next() {
		source, scanErr := scanSourceRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sources = append(sources, *source)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate sources: %w", rowsErr)
	}
	return sources, nil
}

func (r *SourceRepository) Update(ctx context.Context, source *models.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	source.UpdatedAt = time.Now()

	policyJSON, err := json.Marshal(source.Policy)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}

	query := `
		UPDATE sources SET
			domain = $2, category = $3, access_method = $4,
			crawl_frequency = $5, trust_score = $6, policy = $7,
			crawl_status = $8, notes = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		source.ID, source.Domain, source.Category, source.AccessMethod,
		source.CrawlFrequency, source.TrustScore, policyJSON,
		source.CrawlStatus, source.Notes, source.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordCrawl bumps total crawls plus exactly one of the success or failure
// counters in a single statement, and stamps last_crawled on success.
func (r *SourceRepository) RecordCrawl(ctx context.Context, id string, success bool) error {
	counter := "failedCrawls"
	if success {
		counter = "successfulCrawls"
	}

	// jsonb_set nesting keeps the whole bump atomic in one UPDATE
	query := `
		UPDATE sources SET
			statistics = jsonb_set(
				jsonb_set(statistics, '{totalCrawls}',
					(COALESCE(statistics->>'totalCrawls', '0')::int + 1)::text::jsonb),
				('{' || $2 || '}')::text[],
				(COALESCE(statistics->>$2, '0')::int + 1)::text::jsonb),
			last_crawled = CASE WHEN $3 THEN NOW() ELSE last_crawled END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, counter, success)
	if err != nil {
		return fmt.Errorf("record crawl: %w", err)
	}
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLeadsGenerated bumps the leads counter once per newly created lead.
func (r *SourceRepository) IncrementLeadsGenerated(ctx context.Context, id string) error {
	query := `
		UPDATE sources SET
			statistics = jsonb_set(statistics, '{leadsGenerated}',
				(COALESCE(statistics->>'leadsGenerated', '0')::int + 1)::text::jsonb),
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment leads generated: %w", err)
	}
	return nil
}

func scanSource(row *sql.Row) (*models.Source, error) {
	return scanSourceRow(row)
}

func scanSourceRow(row rowScanner) (*models.Source, error) {
	var source models.Source
	var policyJSON, statsJSON []byte

	err := row.Scan(
		&source.ID, &source.Domain, &source.Category, &source.AccessMethod,
		&source.CrawlFrequency, &source.TrustScore, &policyJSON,
		&source.CrawlStatus, &source.LastCrawled, &statsJSON,
		&source.AddedBy, &source.Notes, &source.CreatedAt, &source.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan source: %w", err)
	}

	if len(policyJSON) > 0 {
		if unmarshalErr := json.Unmarshal(policyJSON, &source.Policy); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal policy: %w", unmarshalErr)
		}
	}
	if len(statsJSON) > 0 {
		if unmarshalErr := json.Unmarshal(statsJSON, &source.Statistics); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal statistics: %w", unmarshalErr)
		}
	}
	return &source, nil
}
