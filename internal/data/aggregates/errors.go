package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
)

// ErrRetryable marks transient failures a caller may retry.
var ErrRetryable = errors.New("retryable")

// MapError maps infrastructure failures onto the application sentinels so
// handlers can pick a status without knowing about gorm or pgx.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrInvalidArgument),
		errors.Is(err, apperr.ErrForbidden),
		errors.Is(err, apperr.ErrUnauthorized),
		errors.Is(err, ErrRetryable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return wrap(op, apperr.ErrNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrap(op, ErrRetryable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return wrap(op, apperr.ErrConflict, err) // unique_violation
		case "23503":
			return wrap(op, apperr.ErrInvalidArgument, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return wrap(op, ErrRetryable, err) // serialization/deadlock/lock_not_available
		}
	}

	// sqlite reports constraint failures as plain strings.
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint failed"):
		return wrap(op, apperr.ErrConflict, err)
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "database is locked"):
		return wrap(op, ErrRetryable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func wrap(op string, sentinel, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(sentinel, err))
}
