package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erinhale/kcal/internal/domain"
)

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
// Each estimate row owns its line items in estimate_items, keyed by position
// so input order survives the round trip.
type SQLiteEstimateRepo struct {
	db *sql.DB
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(db *sql.DB) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: db}
}

func (r *SQLiteEstimateRepo) Create(ctx context.Context, e *domain.Estimate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting estimate insert: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO estimates (id, raw_input, total_calories, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.RawInput, e.TotalCalories, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate: %w", err)
	}

	for i, item := range e.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO estimate_items (estimate_id, position, label, calories, matched) VALUES (?, ?, ?, ?, ?)`,
			e.ID, i, item.Label, item.Calories, boolToInt(item.Matched),
		)
		if err != nil {
			return fmt.Errorf("inserting estimate item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing estimate insert: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteEstimateRepo) GetByID(ctx context.Context, id string) (*domain.Estimate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, raw_input, total_calories, created_at FROM estimates WHERE id = ?`, id)

	e, err := r.scanEstimate(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEstimateRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Estimate, error) {
	query := `SELECT id, raw_input, total_calories, created_at FROM estimates ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer rows.Close()

	var estimates []*domain.Estimate
	for rows.Next() {
		var e domain.Estimate
		var createdAtStr string
		if err := rows.Scan(&e.ID, &e.RawInput, &e.TotalCalories, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning estimate row: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		estimates = append(estimates, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimates: %w", err)
	}

	for _, e := range estimates {
		if err := r.loadItems(ctx, e); err != nil {
			return nil, err
		}
	}
	return estimates, nil
}

func (r *SQLiteEstimateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting estimate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("estimate: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteEstimateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM estimates`); err != nil {
		return fmt.Errorf("clearing estimates: %w", err)
	}
	return nil
}

// scanEstimate scans a single estimate from a *sql.Row (items not loaded).
func (r *SQLiteEstimateRepo) scanEstimate(row *sql.Row) (*domain.Estimate, error) {
	var e domain.Estimate
	var createdAtStr string

	err := row.Scan(&e.ID, &e.RawInput, &e.TotalCalories, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("estimate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning estimate: %w", err)
	}

	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

// loadItems fills e.Items in position order.
func (r *SQLiteEstimateRepo) loadItems(ctx context.Context, e *domain.Estimate) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT label, calories, matched FROM estimate_items WHERE estimate_id = ? ORDER BY position`, e.ID)
	if err != nil {
		return fmt.Errorf("loading estimate items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.FoodLineItem
		var matched int
		if err := rows.Scan(&item.Label, &item.Calories, &matched); err != nil {
			return fmt.Errorf("scanning estimate item: %w", err)
		}
		item.Matched = intToBool(matched)
		e.Items = append(e.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating estimate items: %w", err)
	}
	return nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
