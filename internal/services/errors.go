package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/philosophy-quiz/internal/errors"
	"github.com/SAP-F-2025/philosophy-quiz/internal/evaluator"
	"github.com/SAP-F-2025/philosophy-quiz/internal/interaction"
	"github.com/SAP-F-2025/philosophy-quiz/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Content errors
	ErrTopicNotFound    = errors.New("topic not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrTopicRejected    = errors.New("topic failed content validation")

	// Session errors
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionEnded         = errors.New("session has ended")
	ErrUnsupportedOperation = errors.New("operation not supported by question type")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTopicNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		repositories.IsNotFoundError(err)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrBadRequest) {
		return true
	}
	if errors.Is(err, interaction.ErrOptionOutOfRange) || errors.Is(err, interaction.ErrRowOutOfRange) {
		return true
	}
	if errors.Is(err, evaluator.ErrMissingAnswer) || errors.Is(err, evaluator.ErrUnsupportedType) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsIncomplete checks if a submission was refused because rows are unanswered
func IsIncomplete(err error) bool {
	return errors.Is(err, evaluator.ErrIncompleteSubmission)
}

// IsConflict checks if error represents a state conflict such as acting on a
// locked question
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSessionEnded) ||
		errors.Is(err, ErrUnsupportedOperation) ||
		errors.Is(err, interaction.ErrLocked)
}
