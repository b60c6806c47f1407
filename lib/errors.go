package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Stock errors
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrVariantNotFound   = errors.New("variant not found")
)

// MapPgError translates driver-level errors into the sentinel errors the
// handlers branch on.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code { // SQLSTATE
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// before or after MapPgError.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports whether err means the requested row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetUserMessage maps an internal error to a message safe to show customers
func GetUserMessage(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "This record already exists"
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		return "Your session is no longer valid, please sign in again"
	case errors.Is(err, ErrInsufficientStock):
		return "Not enough stock for the selected combination"
	case errors.Is(err, ErrVariantNotFound):
		return "The selected combination is not available"
	default:
		return "Something went wrong, please try again"
	}
}

// GetDetailForLogging returns the full error text for structured logs
func GetDetailForLogging(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Sprintf("%s (SQLSTATE %s, constraint %s)", pgErr.Message, pgErr.Code, pgErr.ConstraintName)
	}
	return err.Error()
}
