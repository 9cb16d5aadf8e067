package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

const leadColumns = `id, company_name, company_details, facilities,
	product_recommendations, signals, lead_score, urgency, status,
	assigned_to, territory, region, next_action, feedback,
	contact_attempts, metadata, created_at, updated_at`

type LeadRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewLeadRepository(db *sql.DB, log logger.Logger) *LeadRepository {
	return &LeadRepository{db: db, logger: log}
}

// Create inserts a new lead. The ID and timestamps are assigned here.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	lead.ID = uuid.New().String()
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if lead.Metadata.DiscoveredAt.IsZero() {
		lead.Metadata.DiscoveredAt = now
	}
	lead.Metadata.LastUpdated = now

	docs, err := marshalLeadDocs(lead)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.db.ExecContext(ctx, query,
		lead.ID, lead.CompanyName,
		docs.details, docs.facilities, docs.recommendations, docs.signals,
		docs.score, lead.Urgency, lead.Status, lead.AssignedTo,
		lead.Territory, lead.Region, docs.nextAction, docs.feedback,
		docs.contacts, docs.metadata, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// Save writes the whole lead document back. Reconciliation recomputes
// recommendations, score, and urgency before calling this.
func (r *LeadRepository) Save(ctx context.Context, lead *models.Lead) error {
	lead.UpdatedAt = time.Now()
	lead.Metadata.LastUpdated = lead.UpdatedAt

	docs, err := marshalLeadDocs(lead)
	if err != nil {
		return err
	}

	query := `
		UPDATE leads SET
			company_name = $2, company_details = $3, facilities = $4,
			product_recommendations = $5, signals = $6, lead_score = $7,
			urgency = $8, status = $9, assigned_to = $10, territory = $11,
			region = $12, next_action = $13, feedback = $14,
			contact_attempts = $15, metadata = $16, updated_at = $17
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		lead.ID, lead.CompanyName,
		docs.details, docs.facilities, docs.recommendations, docs.signals,
		docs.score, lead.Urgency, lead.Status, lead.AssignedTo,
		lead.Territory, lead.Region, docs.nextAction, docs.feedback,
		docs.contacts, docs.metadata, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByCompanyName looks up the lead by its natural dedup key. Matching is
// exact and case-sensitive.
func (r *LeadRepository) GetByCompanyName(ctx context.Context, name string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE company_name = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// LeadFilter holds filter, sort, and pagination params for List.
type LeadFilter struct {
	Status     string
	Urgency    string
	AssignedTo string
	Territory  string
	SortBy     string // score, urgency, discovered_at, company_name
	SortOrder  string // asc, desc
	Page       int
	Limit      int
}

var leadSortColumns = map[string]string{
	"score":         "(lead_score->>'total')::numeric",
	"company_name":  "company_name",
	"urgency":       "urgency",
	"discovered_at": "created_at",
}

// List returns a page of leads plus the total count matching the filter.
func (r *LeadRepository) List(ctx context.Context, filter LeadFilter) ([]models.Lead, int, error) {
	where, args := buildLeadWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM leads WHERE 1=1` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	order := leadSortColumns["discovered_at"] + " DESC"
	if col, ok := leadSortColumns[filter.SortBy]; ok {
		dir := "DESC"
		if filter.SortOrder == "asc" {
			dir = "ASC"
		}
		order = col + " " + dir
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	limitIdx := strconv.Itoa(len(args) + 1)
	offsetIdx := strconv.Itoa(len(args) + 2)
	// order uses whitelisted columns; limit and offset are integers
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1` + where +
		` ORDER BY ` + order + ` LIMIT $` + limitIdx + ` OFFSET $` + offsetIdx
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, scanErr := scanLead(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		leads = append(leads, *lead)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", rowsErr)
	}
	return leads, total, nil
}

// Delete removes a lead permanently. Administrative action only.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if affected, affErr := result.RowsAffected(); affErr == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func buildLeadWhere(filter LeadFilter) (string, []any) {
	where := ""
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		where += fmt.Sprintf(" AND %s = $%d", clause, len(args))
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.Urgency != "" {
		add("urgency", filter.Urgency)
	}
	if filter.AssignedTo != "" {
		add("assigned_to", filter.AssignedTo)
	}
	if filter.Territory != "" {
		add("territory", filter.Territory)
	}
	return where, args
}

type leadDocs struct {
	details         []byte
	facilities      []byte
	recommendations []byte
	signals         []byte
	score           []byte
	nextAction      []byte
	feedback        []byte
	contacts        []byte
	metadata        []byte
}

func marshalLeadDocs(lead *models.Lead) (*leadDocs, error) {
	docs := &leadDocs{}
	for _, field := range []struct {
		name string
		dst  *[]byte
		src  any
	}{
		{"company_details", &docs.details, lead.CompanyDetails},
		{"facilities", &docs.facilities, emptySlice(lead.Facilities)},
		{"product_recommendations", &docs.recommendations, emptySlice(lead.ProductRecommendations)},
		{"signals", &docs.signals, emptySlice(lead.Signals)},
		{"lead_score", &docs.score, lead.LeadScore},
		{"next_action", &docs.nextAction, lead.NextAction},
		{"feedback", &docs.feedback, lead.Feedback},
		{"contact_attempts", &docs.contacts, emptySlice(lead.ContactAttempts)},
		{"metadata", &docs.metadata, lead.Metadata},
	} {
		data, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", field.name, err)
		}
		*field.dst = data
	}
	return docs, nil
}

// emptySlice keeps JSONB columns as [] instead of null for nil slices.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *LeadRepository) scanOne(row *sql.Row) (*models.Lead, error) {
	lead, err := scanLead(row)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var lead models.Lead
	var details, facilities, recommendations, signals, score []byte
	var nextAction, feedback, contacts, metadata []byte

	err := row.Scan(
		&lead.ID, &lead.CompanyName, &details, &facilities,
		&recommendations, &signals, &score, &lead.Urgency, &lead.Status,
		&lead.AssignedTo, &lead.Territory, &lead.Region, &nextAction,
		&feedback, &contacts, &metadata, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan lead: %w", err)
	}

	for _, field := range []struct {
		name string
		data []byte
		dst  any
	}{
		{"company_details", details, &lead.CompanyDetails},
		{"facilities", facilities, &lead.Facilities},
		{"product_recommendations", recommendations, &lead.ProductRecommendations},
		{"signals", signals, &lead.Signals},
		{"lead_score", score, &lead.LeadScore},
		{"next_action", nextAction, &lead.NextAction},
		{"feedback", feedback, &lead.Feedback},
		{"contact_attempts", contacts, &lead.ContactAttempts},
		{"metadata", metadata, &lead.Metadata},
	} {
		if len(field.data) == 0 {
			continue
		}
		if unmarshalErr := json.Unmarshal(field.data, field.dst); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", field.name, unmarshalErr)
		}
	}
	return &lead, nil
}
