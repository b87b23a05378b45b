package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
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

// Common application errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrSchemaMismatch = errors.New("dataset is missing required columns")
	ErrNoRecords      = errors.New("no records extracted")
)

// ErrorKind classifies failures so callers can decide between skipping a document and aborting.
type ErrorKind string

const (
	KindSchemaMismatch      ErrorKind = "SCHEMA_MISMATCH"
	KindDocumentReadFailure ErrorKind = "DOCUMENT_READ_FAILURE"
	KindExtractionFailure   ErrorKind = "EXTRACTION_FAILURE"
)

// DocumentError is a failure scoped to a single document of a batch.
type DocumentError struct {
	Kind       ErrorKind
	DocumentID string
	Cause      error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: document %q: %v", e.Kind, e.DocumentID, e.Cause)
	}
	return fmt.Sprintf("%s: document %q", e.Kind, e.DocumentID)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewReadFailure(docID string, cause error) *DocumentError {
	return &DocumentError{Kind: KindDocumentReadFailure, DocumentID: docID, Cause: cause}
}

func NewExtractionFailure(docID string, cause error) *DocumentError {
	return &DocumentError{Kind: KindExtractionFailure, DocumentID: docID, Cause: cause}
}

// NewSchemaMismatch wraps ErrSchemaMismatch with the missing column names.
func NewSchemaMismatch(missing []string) error {
	return NewAppError(string(KindSchemaMismatch), fmt.Sprintf("missing columns %v", missing), ErrSchemaMismatch)
}

// KindOf returns the document error kind carried by err, or "" when err is not a DocumentError.
func KindOf(err error) ErrorKind {
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
