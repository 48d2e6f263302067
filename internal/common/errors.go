package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Kind    error
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the error's kind sentinel, so errors.Is(err, ErrParse) works
// without losing the underlying cause.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Error codes
const (
	CodeExtractionEmpty = "EXTRACTION_EMPTY"
	CodeParse           = "PARSE_ERROR"
	CodeSchemaMismatch  = "MODALITY_SCHEMA_MISMATCH"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConfig          = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrExtractionEmpty = errors.New("no extractable data")
	ErrParse           = errors.New("parse error")
	ErrSchemaMismatch  = errors.New("modality schema mismatch")
	ErrInvalidInput    = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, kind, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Cause:   cause,
	}
}

// NewParseError reports a numeric field or an expected column that could not be read.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(CodeParse, message, ErrParse, cause)
}

// NewSchemaMismatch reports a conference spreadsheet that lacks the expected layout.
func NewSchemaMismatch(sheet, message string, cause error) *AppError {
	return NewAppError(CodeSchemaMismatch, fmt.Sprintf("expected sheet %q: %s", sheet, message), ErrSchemaMismatch, cause)
}

// NewExtractionEmpty reports a document that yielded no order lines.
func NewExtractionEmpty(message string) *AppError {
	return NewAppError(CodeExtractionEmpty, message, ErrExtractionEmpty, nil)
}

// NewInvalidInput reports unusable caller input (unknown modality, unsupported file).
func NewInvalidInput(message string, cause error) *AppError {
	return NewAppError(CodeInvalidInput, message, ErrInvalidInput, cause)
}

// WrapError prefixes err with message, keeping it matchable with errors.Is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsRecoverable reports whether the caller may retry the run with a different document.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrExtractionEmpty)
}

// UserMessage renders the single user-visible message for a failed run.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fmt.Sprintf("Erro ao processar: %v", err)
	}
	switch {
	case errors.Is(appErr, ErrExtractionEmpty):
		return "Não foi possível extrair dados do pedido. Verifique o formato."
	case appErr.Cause != nil:
		return fmt.Sprintf("Erro ao processar: %s: %v", appErr.Message, appErr.Cause)
	default:
		return fmt.Sprintf("Erro ao processar: %s", appErr.Message)
	}
}
