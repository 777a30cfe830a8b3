package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/simsportal/sims-portal-backend/internal/platform/apperr"
)

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected original error to stay in the chain")
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	err := MapError("op", &pgconn.PgError{Code: "23505", Message: "duplicate"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMapError_SQLiteUnique(t *testing.T) {
	err := MapError("op", errors.New("UNIQUE constraint failed: user_badge.user_id"))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMapError_Retryable(t *testing.T) {
	if err := MapError("op", context.DeadlineExceeded); !errors.Is(err, ErrRetryable) {
		t.Fatalf("expected retryable, got %v", err)
	}
	if err := MapError("op", &pgconn.PgError{Code: "40P01"}); !errors.Is(err, ErrRetryable) {
		t.Fatalf("expected retryable for deadlock, got %v", err)
	}
}

func TestMapError_PassthroughSentinel(t *testing.T) {
	in := errors.Join(apperr.ErrForbidden, errors.New("nope"))
	if out := MapError("op", in); out != in {
		t.Fatalf("expected passthrough, got %v", out)
	}
}

func TestMapError_Nil(t *testing.T) {
	if MapError("op", nil) != nil {
		t.Fatalf("expected nil")
	}
}
