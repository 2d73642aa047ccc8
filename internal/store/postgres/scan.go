package postgres

import (
	"database/sql"

	"github.com/pairlane/waypoint/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanUpdate scans a single row into a model.LocationUpdate.
// The row must contain columns in the order defined by updateColumns.
func scanUpdate(row scannable) (*model.LocationUpdate, error) {
	var u model.LocationUpdate
	var place sql.NullString
	var trigger string

	err := row.Scan(
		&u.ID,
		&u.Latitude,
		&u.Longitude,
		&place,
		&trigger,
		&u.CapturedAt,
		&u.EmittedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Place = place.String
	u.Trigger = model.Trigger(trigger)
	return &u, nil
}

// scanUpdateWithTotal scans a row that carries a leading total_count column.
func scanUpdateWithTotal(row scannable) (*model.LocationUpdate, int, error) {
	var u model.LocationUpdate
	var total int
	var place sql.NullString
	var trigger string

	err := row.Scan(
		&total,
		&u.ID,
		&u.Latitude,
		&u.Longitude,
		&place,
		&trigger,
		&u.CapturedAt,
		&u.EmittedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	u.Place = place.String
	u.Trigger = model.Trigger(trigger)
	return &u, total, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
