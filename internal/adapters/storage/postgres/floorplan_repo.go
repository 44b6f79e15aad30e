package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-companion/internal/domain/floorplan"
)

type FloorplanRepo struct {
	db *sql.DB
}

func NewFloorplanRepo(db *sql.DB) *FloorplanRepo {
	return &FloorplanRepo{db: db}
}

// Upsert apoya en el UNIQUE(account_id) del schema: un plano por cuenta.
func (r *FloorplanRepo) Upsert(ctx context.Context, l floorplan.Layout) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO floor_plans (id, account_id, grid, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (account_id) DO UPDATE
		SET grid = EXCLUDED.grid, updated_at = EXCLUDED.updated_at
	`,
		l.ID,
		l.AccountID,
		[]byte(l.Grid),
		l.UpdatedAt,
	)
	return err
}

func (r *FloorplanRepo) GetByAccount(ctx context.Context, accountID string) (floorplan.Layout, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return floorplan.Layout{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, grid, updated_at
		FROM floor_plans
		WHERE account_id = $1
	`, accountID)

	var (
		l    floorplan.Layout
		grid []byte
	)
	if err := row.Scan(&l.ID, &l.AccountID, &grid, &l.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return floorplan.Layout{}, ErrNotFound
		}
		return floorplan.Layout{}, err
	}
	l.Grid = grid
	return l, nil
}
