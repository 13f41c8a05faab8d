package errors

import "fmt"

// ErrorCode represents an Atril error code.
type ErrorCode string

const (
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING" // 400
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrFileNotFound        ErrorCode = "FILE_NOT_FOUND"       // 404
	ErrLabelAlreadyExists  ErrorCode = "LABEL_ALREADY_EXISTS" // 409
	ErrPayloadTooLarge     ErrorCode = "PAYLOAD_TOO_LARGE"    // 413
	ErrEmptyPayload        ErrorCode = "EMPTY_PAYLOAD"        // 422
	ErrIncompleteSolution  ErrorCode = "INCOMPLETE_SOLUTION"  // 422
	ErrInvalidSlot         ErrorCode = "INVALID_SLOT"         // 422
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// AtrilError represents a structured error with code, status, and details.
type AtrilError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AtrilError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAmbiguousAddressing creates a 400 error for when both ID and label are provided.
func NewAmbiguousAddressing() *AtrilError {
	return &AtrilError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and label; use one addressing mode",
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AtrilError {
	return &AtrilError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a solution cannot be found.
func NewNotFound(identifier string) *AtrilError {
	return &AtrilError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("solution not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing import/export file.
func NewFileNotFound(path string) *AtrilError {
	return &AtrilError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewLabelAlreadyExists creates a 409 error for label collisions.
func NewLabelAlreadyExists(label string) *AtrilError {
	return &AtrilError{
		Code:    ErrLabelAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("solution with label %q already exists", label),
		Details: map[string]any{"label": label},
	}
}

// NewPayloadTooLarge creates a 413 error when a CSV payload exceeds the size limit.
func NewPayloadTooLarge(payload string, max, actual int) *AtrilError {
	return &AtrilError{
		Code:    ErrPayloadTooLarge,
		Status:  413,
		Message: fmt.Sprintf("payload %q exceeds maximum size: %d bytes (max %d)", payload, actual, max),
		Details: map[string]any{"payload": payload, "max_bytes": max, "actual_bytes": actual},
	}
}

// NewEmptyPayload creates a 422 error when a CSV payload has no rows.
func NewEmptyPayload(payload string) *AtrilError {
	return &AtrilError{
		Code:    ErrEmptyPayload,
		Status:  422,
		Message: fmt.Sprintf("payload %q is empty", payload),
		Details: map[string]any{"payload": payload},
	}
}

// NewIncompleteSolution creates a 422 error when a solution export is missing payloads.
func NewIncompleteSolution(missing []string) *AtrilError {
	return &AtrilError{
		Code:    ErrIncompleteSolution,
		Status:  422,
		Message: fmt.Sprintf("solution export missing or invalid payloads: %v", missing),
		Details: map[string]any{"missing_payloads": missing},
	}
}

// NewInvalidSlot creates a 422 error for a time slot outside [0, 99].
// The message is the exact string the presentation layer shows for a
// contract-violating exporter.
func NewInvalidSlot(slot int) *AtrilError {
	return &AtrilError{
		Code:    ErrInvalidSlot,
		Status:  422,
		Message: "Invalid Time",
		Details: map[string]any{"slot": slot},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AtrilError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AtrilError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AtrilError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AtrilError); ok {
		return aErr.Code == code
	}
	return false
}
