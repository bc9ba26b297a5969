package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

// validID reports whether id can be compared against a UUID column. Anything
// else cannot match a row and is treated as not found.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// table names are compile-time constants from this package, never user input.
func deleteByID(ctx context.Context, pool *pgxpool.Pool, table string, id string) error {
	if !validID(id) {
		return model.ErrNotFound
	}
	tag, err := pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func countRows(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	var n int
	if err := pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
