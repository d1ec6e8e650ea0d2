package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/diewo77/salesdesk/validation"
	"gorm.io/gorm"
)

// Failure classes returned by the services. Callers match them with errors.Is.
var (
	ErrEmptyOffer = errors.New("offer has no line items")
	ErrMissingID  = errors.New("missing id")
	ErrNotFound   = errors.New("record not found")
	ErrIntegrity  = errors.New("integrity violation")
	ErrUnexpected = errors.New("unexpected failure")
)

// ValidationError carries field-level violations found before any write.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Violations.String()
}

// IsValidation reports whether err was raised by input checks rather than
// by the store.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrEmptyOffer)
}

// storeError maps a gorm error to one of the failure classes and logs it
// once. A nil err stays nil.
func storeError(scope, op string, err error) error {
	if err == nil {
		return nil
	}
	var out error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isIntegrityError(err):
		out = fmt.Errorf("%s: %w: %w", op, ErrIntegrity, err)
	default:
		out = fmt.Errorf("%s: %w: %w", op, ErrUnexpected, err)
	}
	log.Printf("[%s] %v", scope, out)
	return out
}

func isIntegrityError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates foreign key") ||
		strings.Contains(msg, "violates unique")
}
