package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDuplicateKey is returned when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKeyViolation is returned when an insert references a missing
	// row, or a delete would orphan dependent rows.
	ErrForeignKeyViolation = errors.New("operation violates a foreign key constraint")

	// ErrStoreUnavailable is returned when the write store cannot be reached
	// or a call against it timed out. Retryable, unlike the constraint errors.
	ErrStoreUnavailable = errors.New("write store unavailable")
)

// translate maps GORM's translated driver errors onto the package sentinels
// so services can dispatch with errors.Is without importing gorm.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyViolation
	case isUnavailable(err):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}

// isUnavailable reports whether err is a connectivity or deadline failure
// rather than something the statement itself caused.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
