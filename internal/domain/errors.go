package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrInvalidSession   = errors.New("invalid session")
	ErrSessionExpired   = errors.New("session expired")
	ErrScheduleConflict = errors.New("schedule conflict")
)

// RuleViolationError carries every business-rule violation found for a
// proposed occurrence, so callers can surface the complete list in one pass.
type RuleViolationError struct {
	Violations []string
}

func (e *RuleViolationError) Error() string {
	return "rule violations: " + strings.Join(e.Violations, "; ")
}
