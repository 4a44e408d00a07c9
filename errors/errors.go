/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a provider, entity type or access point is not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when attempting to add something that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEntityType is returned when an entity type name is not in the vocabulary
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrDuplicateAttachment marks an access point that replaced an earlier one.
	// It is informational and never fails a registration.
	ErrDuplicateAttachment = errors.New("access point replaced")
)

// NotFoundError represents an error when something is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when something already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownEntityTypeError is returned when an entity type name cannot be resolved.
// Suggestions holds the closest legal names; Valid holds the whole vocabulary
// and is only set when there are no suggestions.
type UnknownEntityTypeError struct {
	Name        string
	Suggestions []string
	Valid       []string
}

func (e *UnknownEntityTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is not a recognized entity name. ", e.Name)
	switch len(e.Suggestions) {
	case 0:
		b.WriteString("Valid arguments are ")
		b.WriteString(strings.Join(e.Valid, ", "))
	case 1:
		fmt.Fprintf(&b, "Closest match is '%s'", e.Suggestions[0])
	default:
		quoted := make([]string, len(e.Suggestions))
		for i, s := range e.Suggestions {
			quoted[i] = "'" + s + "'"
		}
		b.WriteString("Closest matches are ")
		b.WriteString(strings.Join(quoted, ", "))
	}
	return b.String()
}

func (e *UnknownEntityTypeError) Is(target error) bool {
	return target == ErrUnknownEntityType
}

// DuplicateAttachmentError reports that an access point on an entity type
// was replaced by a later registration.
type DuplicateAttachmentError struct {
	Entity string
	Name   string
}

func (e *DuplicateAttachmentError) Error() string {
	return fmt.Sprintf("access point %s.%s replaced by a later registration", e.Entity, e.Name)
}

func (e *DuplicateAttachmentError) Is(target error) bool {
	return target == ErrDuplicateAttachment
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(kind, key string) error {
	return &AlreadyExistsError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnknownEntityTypeError creates a new UnknownEntityTypeError.
// valid is only retained when suggestions is empty.
func NewUnknownEntityTypeError(name string, suggestions, valid []string) error {
	e := &UnknownEntityTypeError{Name: name, Suggestions: suggestions}
	if len(suggestions) == 0 {
		e.Valid = valid
	}
	return e
}

// NewDuplicateAttachmentError creates a new DuplicateAttachmentError
func NewDuplicateAttachmentError(entity, name string) error {
	return &DuplicateAttachmentError{Entity: entity, Name: name}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownEntityType checks if an error is an unknown entity type error
func IsUnknownEntityType(err error) bool {
	return errors.Is(err, ErrUnknownEntityType)
}

// IsDuplicateAttachment checks if an error reports a replaced access point
func IsDuplicateAttachment(err error) bool {
	return errors.Is(err, ErrDuplicateAttachment)
}
