package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

const officerColumns = `id, name, email, phone, territory, active,
	preferences, created_at, updated_at`

type OfficerRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewOfficerRepository(db *sql.DB, log logger.Logger) *OfficerRepository {
	return &OfficerRepository{db: db, logger: log}
}

func (r *OfficerRepository) GetByID(ctx context.Context, id string) (*models.Officer, error) {
	query := `SELECT ` + officerColumns + ` FROM officers WHERE id = $1`
	return scanOfficer(r.db.QueryRowContext(ctx, query, id))
}

// FirstActiveByTerritory returns the first active officer covering a
// territory, in insertion order, or ErrNotFound when nobody covers it.
func (r *OfficerRepository) FirstActiveByTerritory(ctx context.Context, territory string) (*models.Officer, error) {
	query := `
		SELECT ` + officerColumns + `
		FROM officers
		WHERE territory = $1 AND active = TRUE
		ORDER BY created_at
		LIMIT 1
	`
	return scanOfficer(r.db.QueryRowContext(ctx, query, territory))
}

func scanOfficer(row *sql.Row) (*models.Officer, error) {
	var officer models.Officer
	var prefsJSON []byte

	err := row.Scan(
		&officer.ID, &officer.Name, &officer.Email, &officer.Phone,
		&officer.Territory, &officer.Active, &prefsJSON,
		&officer.CreatedAt, &officer.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan officer: %w", err)
	}

	if len(prefsJSON) > 0 {
		if unmarshalErr := json.Unmarshal(prefsJSON, &officer.Preferences); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal preferences: %w", unmarshalErr)
		}
	}
	return &officer, nil
}
