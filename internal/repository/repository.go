package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNoRowsAffected is returned when a statement that must change a row matched none.
var ErrNoRowsAffected = errors.New("no rows affected")

// insertID runs an INSERT written with `?` placeholders and returns the generated id. Postgres has no
// LastInsertId so the statement is extended with RETURNING id there.
func insertID(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (int64, error) {
	if db.DriverName() == "postgres" {
		var id int64
		if err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}
