package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/diewo77/salesdesk/auth"
	"github.com/diewo77/salesdesk/i18n"
	"github.com/diewo77/salesdesk/internal/policy"
	"github.com/diewo77/salesdesk/internal/registry"
	"github.com/diewo77/salesdesk/internal/services"
)

// Process exit codes.
const (
	exitFailure      = 1
	exitInvalidInput = 2
	exitDenied       = 3
	exitNotFound     = 4
)

func exitCode(err error) int {
	switch {
	case services.IsValidation(err):
		return exitInvalidInput
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, policy.ErrUnauthorized):
		return exitDenied
	case errors.Is(err, services.ErrNotFound), errors.Is(err, registry.ErrNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}

var rowField = regexp.MustCompile(`^items\[(\d+)\]\.(.+)$`)

// message renders err for the user in the configured language.
func (e *env) message(err error) string {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return e.violations(ve)
	case errors.Is(err, services.ErrEmptyOffer):
		return i18n.T(e.lang, "offer_empty")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return i18n.T(e.lang, "invalid_login")
	case errors.Is(err, auth.ErrUserExists):
		return i18n.T(e.lang, "user_exists")
	case errors.Is(err, policy.ErrUnauthorized):
		return i18n.T(e.lang, "unauthorized")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, registry.ErrNotFound):
		return i18n.T(e.lang, "not_found")
	case errors.Is(err, services.ErrIntegrity):
		return i18n.T(e.lang, "integrity")
	case errors.Is(err, registry.ErrLookup), errors.Is(err, registry.ErrEmptyCIF):
		return i18n.T(e.lang, "lookup_failed")
	case errors.Is(err, services.ErrUnexpected):
		return i18n.T(e.lang, "failed")
	default:
		return err.Error()
	}
}

// violations lists one "Field: message" line per violation. Row fields
// are prefixed with their 1-based row number.
func (e *env) violations(ve *services.ValidationError) string {
	lines := make([]string, 0, len(ve.Violations))
	for _, field := range ve.Violations.Fields() {
		label := i18n.Field(e.lang, field)
		if m := rowField.FindStringSubmatch(field); m != nil {
			row, _ := strconv.Atoi(m[1])
			label = fmt.Sprintf("#%d %s", row+1, i18n.Field(e.lang, m[2]))
		}
		lines = append(lines, label+": "+i18n.T(e.lang, ve.Violations[field]))
	}
	return strings.Join(lines, "\n")
}
