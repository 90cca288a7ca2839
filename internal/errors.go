package internal

import (
	"errors"
	"fmt"
)

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoPendingFiles      = &ValidationError{Message: "No files to upload. Please select files first."}
	ErrNoValidFiles        = &ValidationError{Message: "No valid files to upload."}
	ErrNothingToSave       = &ValidationError{Message: "No content to save. Please upload files first."}
	ErrSessionNameRequired = &ValidationError{Message: "A session name is required."}
	ErrNoContent           = &ValidationError{Message: "No content available. Upload a file first."}
	ErrNoRawText           = &ValidationError{Message: "No extracted text available for this item."}
	ErrInvalidIndex        = &ValidationError{Message: "Index out of range."}
	ErrSubmitInFlight      = &ValidationError{Message: "An upload is already in progress."}
	ErrEmptyMessage        = &ValidationError{Message: "Message is empty."}
)

// Generic user-facing fallbacks per operation.
const (
	MsgUploadFailed   = "Failed to process the upload. Please ensure the URL is valid or try another file."
	MsgDownloadFailed = "Failed to download the file. Please try again."
	MsgExportFailed   = "Export failed—try again."
	MsgChatFailed     = "Sorry, I couldn't process your request. Please try again."
)

// APIError represents a failed backend request.
type APIError struct {
	Op      string // "upload", "chat", "sessions.save", ...
	Status  int
	Message string // backend-provided "error" field, if any
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error [%s] status %d: %s", e.Op, e.Status, msg)
	}
	return fmt.Sprintf("api error [%s]: %s", e.Op, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage returns the backend message verbatim, or fallback when there is none.
func (e *APIError) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// UserMessage extracts a message suitable for display from any error.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var aerr *APIError
	if errors.As(err, &aerr) {
		return aerr.UserMessage(fallback)
	}
	return fallback
}

// StorageError represents errors accessing on-device storage
type StorageError struct {
	Key string
	Op  string // "open", "get", "put", "delete", "parse"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
