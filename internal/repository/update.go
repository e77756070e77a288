package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"packable/internal/db"
)

// updateReturning runs `UPDATE table SET ... WHERE pk = $N RETURNING returning` and scans the
// returned row into dest. The statement goes straight to the connection pool so the builder's
// numbered placeholders reach the driver untouched. No matching row yields gorm.ErrRecordNotFound.
func updateReturning(ctx context.Context, conn *gorm.DB, table, pk string, key interface{}, set db.SetClause, returning string, dest ...interface{}) error {
	query := fmt.Sprintf(`UPDATE %q SET %s WHERE %q = %s RETURNING %s`, table, set.Cols, pk, set.Next(), returning)

	row := conn.WithContext(ctx).Statement.ConnPool.QueryRowContext(ctx, query, set.Args(key)...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gorm.ErrRecordNotFound
		}
		return err
	}
	return nil
}

// deleted turns a delete that touched no rows into gorm.ErrRecordNotFound.
func deleted(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
