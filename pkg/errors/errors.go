// Package errors provides custom error types for the newsroom pipeline.
// These errors enable programmatic error checking with errors.Is across
// the canonicalization stages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the pipeline stages.
var (
	// ErrInvalidEntityName indicates a registration with an empty or
	// all-punctuation name, from which no slug can be derived.
	ErrInvalidEntityName = errors.New("invalid entity name")

	// ErrInvalidContentItem indicates a content item missing a required
	// structural field.
	ErrInvalidContentItem = errors.New("invalid content item")

	// ErrInvalidSource indicates a source with no url. This is a
	// programmer error: sources are validated at the boundary.
	ErrInvalidSource = errors.New("invalid source")

	// ErrUnknownCategory indicates a content category absent from the
	// ranking table.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrSchemaViolation indicates the assembled document failed
	// contract validation.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")
)

// EntityNameError reports a name that cannot be normalized into a slug.
type EntityNameError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *EntityNameError) Error() string {
	return fmt.Sprintf("cannot derive a slug for %s entity from name %q", e.Kind, e.Name)
}

// Is implements errors.Is support.
func (e *EntityNameError) Is(target error) bool {
	return target == ErrInvalidEntityName
}

// ContentItemError reports a content item missing a required field.
type ContentItemError struct {
	ItemID string
	Field  string
}

// Error implements the error interface.
func (e *ContentItemError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("content item %s: missing required field %q", e.ItemID, e.Field)
	}
	return fmt.Sprintf("content item: missing required field %q", e.Field)
}

// Is implements errors.Is support.
func (e *ContentItemError) Is(target error) bool {
	return target == ErrInvalidContentItem
}

// SourceError reports a source with no url.
type SourceError struct {
	ItemID string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("content item %s: source with empty url", e.ItemID)
}

// Is implements errors.Is support.
func (e *SourceError) Is(target error) bool {
	return target == ErrInvalidSource
}

// CategoryError reports a category the ranking table does not know.
type CategoryError struct {
	Category string
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	return fmt.Sprintf("no ranking rule for category %q", e.Category)
}

// Is implements errors.Is support.
func (e *CategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// ValidationError represents a validation failure on a single field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Violation is a single contract violation found by the validator.
type Violation struct {
	Path    string // e.g. "content.investments[2].sources"
	Message string
}

// String renders the violation in the validator's report format.
func (v Violation) String() string {
	if v.Path == "" {
		return "(root): " + v.Message
	}
	return v.Path + ": " + v.Message
}

// SchemaViolations is the full set of contract violations from a single
// validation pass. The validator reports every violation it finds rather
// than stopping at the first.
type SchemaViolations []Violation

// Error implements the error interface.
func (e SchemaViolations) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("schema validation failed with %d violation(s): %s",
		len(e), strings.Join(msgs, "; "))
}

// Is implements errors.Is support.
func (e SchemaViolations) Is(target error) bool {
	return target == ErrSchemaViolation
}

// Helper functions for error checking

// IsInvalidEntityName checks if an error is an invalid entity name error.
func IsInvalidEntityName(err error) bool {
	return errors.Is(err, ErrInvalidEntityName)
}

// IsInvalidContentItem checks if an error is an invalid content item error.
func IsInvalidContentItem(err error) bool {
	return errors.Is(err, ErrInvalidContentItem)
}

// IsInvalidSource checks if an error is an invalid source error.
func IsInvalidSource(err error) bool {
	return errors.Is(err, ErrInvalidSource)
}

// IsUnknownCategory checks if an error is an unknown category error.
func IsUnknownCategory(err error) bool {
	return errors.Is(err, ErrUnknownCategory)
}

// IsSchemaViolation checks if an error is a schema violation.
func IsSchemaViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}
