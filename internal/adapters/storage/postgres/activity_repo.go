package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-companion/internal/domain/activity"
)

// ActivityRepo solo inserta y lista: el trail es append-only y el schema
// no necesita más (sin UPDATE ni DELETE sobre activity_log).
type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (id, account_id, action, detail, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		e.ID,
		e.AccountID,
		e.Action,
		e.Detail,
		e.CreatedAt,
	)
	return err
}

func (r *ActivityRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]activity.Entry, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, action, detail, created_at
		FROM activity_log
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Action, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
