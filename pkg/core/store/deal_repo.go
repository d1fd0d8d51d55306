// Package store persists deal snapshots. The engine never touches it: the
// API loads a Deal here and hands the value to the engine.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hotel_underwriting/pkg/models"
)

// ErrDealNotFound is returned when no deal exists for an id.
var ErrDealNotFound = errors.New("deal not found")

// DealRepository loads and saves deal snapshots by id.
type DealRepository interface {
	Save(ctx context.Context, deal *models.Deal) (*models.Deal, error)
	Get(ctx context.Context, id string) (*models.Deal, error)
	Delete(ctx context.Context, id string) error
}

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgDealRepo stores deals in the deals table.
type PgDealRepo struct {
	db  DBTX
	now func() time.Time
}

// NewPgDealRepo creates a repository on db, usually GetPool().
func NewPgDealRepo(db DBTX) *PgDealRepo {
	return &PgDealRepo{db: db, now: time.Now}
}

// Save upserts the deal by id. A deal without an id gets a new UUID.
// The stored copy is returned; the argument is not modified.
func (r *PgDealRepo) Save(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	saved := stamp(deal, r.now())

	jsonData, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deal: %w", err)
	}

	query := `
		INSERT INTO deals (id, name, deal_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			deal_json = EXCLUDED.deal_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.Exec(ctx, query, saved.ID, saved.Name, jsonData, saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to save deal %s: %w", saved.ID, err)
	}
	return saved, nil
}

// Get loads one deal.
func (r *PgDealRepo) Get(ctx context.Context, id string) (*models.Deal, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := r.db.QueryRow(ctx, `SELECT deal_json FROM deals WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDealNotFound, id)
		}
		return nil, fmt.Errorf("failed to load deal %s: %w", id, err)
	}

	var deal models.Deal
	if err := json.Unmarshal(jsonData, &deal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal %s: %w", id, err)
	}
	return &deal, nil
}

// Delete removes a deal.
func (r *PgDealRepo) Delete(ctx context.Context, id string) error {
	if r.db == nil {
		return fmt.Errorf("database pool not initialized")
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrDealNotFound, id)
	}
	return nil
}

// stamp copies deal with an id and update time.
func stamp(deal *models.Deal, now time.Time) *models.Deal {
	saved := &models.Deal{}
	if deal != nil {
		*saved = *deal
	}
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.UpdatedAt = now.UTC()
	return saved
}
