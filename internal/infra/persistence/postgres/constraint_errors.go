package postgres

import (
	domainerrors "inventory/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

// translateWriteError converts a failed insert/update/delete into a domain error.
func translateWriteError(err error, conflictMessage, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrConflict.WithMessagef("%s", conflictMessage).WithDetails(details)
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrReferenceViolation.WrapMessage(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}
