package repository

import (
	"database/sql"
	"fmt"
)

// requireRow converts a zero-row update into sql.ErrNoRows so services can
// surface a not-found consistently.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
