package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Callers can match them
// with errors.Is to distinguish lookup failures from other faults.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrTrackNotFound      = errors.New("track not found")
	ErrLevelNotFound      = errors.New("level not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrGradeNotFound      = errors.New("grade not found")
	ErrAbsenceNotFound    = errors.New("absence not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSemesterNotFound   = errors.New("semester not found")
	ErrPeriodNotFound     = errors.New("period not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// ConflictError reports a uniqueness violation, such as a duplicate
// matricule, module code or track code.
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// NewConflictError creates a conflict error for a duplicate value.
func NewConflictError(resource, field, value string) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

// IsConflictError checks whether err is a uniqueness conflict.
func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// RestrictedError reports a deletion blocked by dependent records, such
// as removing a track that still has enrollments.
type RestrictedError struct {
	Resource  string
	DependsOn string
}

func (e *RestrictedError) Error() string {
	return fmt.Sprintf("cannot delete %s: %s still reference it", e.Resource, e.DependsOn)
}

// NewRestrictedError creates a restricted-deletion error.
func NewRestrictedError(resource, dependsOn string) *RestrictedError {
	return &RestrictedError{Resource: resource, DependsOn: dependsOn}
}

// IsRestrictedError checks whether err is a blocked deletion.
func IsRestrictedError(err error) bool {
	var re *RestrictedError
	return errors.As(err, &re)
}
