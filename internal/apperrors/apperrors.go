package apperrors

import (
	"errors"
	"fmt"

	"github.com/stazhbg/internship-portal/internal/domain"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrNoActiveSession = errors.New("no active session")
	ErrForbidden       = errors.New("action not permitted for this role")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrPhaseNotActive    = errors.New("required phase is not active")
)

// ReferenceNotFoundError reports a failed ID lookup against the registry.
// Every entity that references another by ID surfaces this on a dangling
// reference instead of crashing downstream.
type ReferenceNotFoundError struct {
	Entity string
	ID     string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}
func (e *ReferenceNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidTransitionError reports an attempt to move an application out of a
// terminal status.
type InvalidTransitionError struct {
	ApplicationID string
	From          domain.ApplicationStatus
	To            domain.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("application '%s' cannot transition from '%s' to '%s'", e.ApplicationID, e.From, e.To)
}
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// AlreadySubmittedError reports a repeated ranked submission by the same
// student within the same phase. Applications are immutable once created,
// so a second submission is rejected rather than merged.
type AlreadySubmittedError struct {
	StudentID string
	PhaseID   string
}

func (e *AlreadySubmittedError) Error() string {
	return fmt.Sprintf("student '%s' already submitted choices for phase '%s'", e.StudentID, e.PhaseID)
}
func (e *AlreadySubmittedError) Is(target error) bool { return target == ErrAlreadyExists }
