package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"packable/internal/db"
	apperrors "packable/internal/errors"
)

// storeErr maps a repository error to an application error. Missing rows and dangling
// foreign keys become notFound; errors that already carry a kind pass through.
func storeErr(err error, notFound error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound), db.IsForeignKeyViolation(err):
		return notFound
	case apperrors.KindOf(err) != apperrors.KindInternal:
		return err
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func noUser(username string) error {
	return apperrors.NotFound("No user: %s", username)
}

func noList(id int) error {
	return apperrors.NotFound("No list: %d", id)
}

func noItem(id int) error {
	return apperrors.NotFound("No item: %d", id)
}
