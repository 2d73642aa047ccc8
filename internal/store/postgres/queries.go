package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pairlane/waypoint/internal/model"
)

// updateColumns is the column list used for SELECT statements on the
// location_updates table.
const updateColumns = `id, latitude, longitude, place, trigger,
	captured_at, emitted_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryRecordUpdate(ctx context.Context, db executor, u *model.LocationUpdate) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO location_updates (
			id, latitude, longitude, place, trigger, captured_at, emitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`,
		u.ID,
		u.Latitude,
		u.Longitude,
		nullString(u.Place),
		string(u.Trigger),
		u.CapturedAt,
		u.EmittedAt,
	)
	return err
}

func queryLatestUpdate(ctx context.Context, db executor) (*model.LocationUpdate, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+updateColumns+` FROM location_updates ORDER BY emitted_at DESC LIMIT 1`)
	u, err := scanUpdate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

const defaultListLimit = 50

func queryListUpdates(ctx context.Context, db executor, filter model.UpdateFilter) ([]*model.LocationUpdate, int, error) {
	where := "TRUE"
	args := []any{}
	n := 0

	addArg := func(clause string, v any) {
		n++
		args = append(args, v)
		where += fmt.Sprintf(" AND "+clause, n)
	}

	if filter.Trigger != "" {
		addArg("trigger = $%d", string(filter.Trigger))
	}
	if !filter.Since.IsZero() {
		addArg("emitted_at >= $%d", filter.Since)
	}
	if !filter.Until.IsZero() {
		addArg("emitted_at < $%d", filter.Until)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER () AS total_count, `+updateColumns+`
		FROM location_updates
		WHERE %s
		ORDER BY emitted_at DESC
		LIMIT $%d OFFSET $%d`, where, n+1, n+2)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var updates []*model.LocationUpdate
	total := 0
	for rows.Next() {
		u, t, err := scanUpdateWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		total = t
		updates = append(updates, u)
	}
	return updates, total, rows.Err()
}

func queryPruneUpdates(ctx context.Context, db executor, before time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM location_updates WHERE emitted_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
