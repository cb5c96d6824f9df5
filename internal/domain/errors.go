package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) when a referenced project, question, URL
// or note id does not exist.
var ErrNotFound = errors.New("not found")

// Validation rules reported in ValidationError.Rule.
const (
	RuleRequired        = "required"
	RuleDuplicateName   = "duplicate_project_name"
	RuleDuplicateText   = "duplicate_question_text"
	RuleParentNotFound  = "parent_not_found"
	RuleParentCrossProj = "parent_cross_project"
	RuleInvalidValue    = "invalid_value"
)

// ValidationError reports a violated input rule.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field and rule.
func NewValidationError(field, rule, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a storage or transaction failure. The operation that
// produced it has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsValidation returns the ValidationError in err's chain, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
