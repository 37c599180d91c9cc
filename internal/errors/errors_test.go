package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("name is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("employee", "42")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "employee not found: 42" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "employee not found: 42")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "employee" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "42" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("upsert task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: upsert task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewDatabaseError should wrap its cause")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("selection", "abc", "invalid selection")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for selection: invalid selection" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	value, ok := err.GetContext("value")
	if !ok || value != "abc" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("load dataset", "10s")

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
}

func TestNewExternalServiceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalServiceError("gemini", "AI_UNAVAILABLE", "failed to reach the AI service", cause)

	if err.Type != ErrorTypeExternalService {
		t.Errorf("NewExternalServiceError type = %v, want %v", err.Type, ErrorTypeExternalService)
	}
	if err.Code != "AI_UNAVAILABLE" {
		t.Errorf("NewExternalServiceError code = %v, want %v", err.Code, "AI_UNAVAILABLE")
	}
	service, ok := err.GetContext("service")
	if !ok || service != "gemini" {
		t.Errorf("NewExternalServiceError should set service context")
	}

	sentinel := NewExternalServiceError("gemini", "AI_UNAVAILABLE", "other message", nil)
	if !errors.Is(fmt.Errorf("ask: %w", err), sentinel) {
		t.Errorf("errors with the same type and code should match through wrapping")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped")

	if err.Type != ErrorTypeDatabase {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NewNotFoundError("task", "1")) {
		t.Errorf("IsAppError should return true for AppError")
	}
	if !IsAppError(fmt.Errorf("wrapped: %w", NewNotFoundError("task", "1"))) {
		t.Errorf("IsAppError should see through wrapping")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("IsAppError should return false for plain errors")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NewNotFoundError("municipality", "7")
	got, ok := AsAppError(fmt.Errorf("wrapped: %w", appErr))
	if !ok || got != appErr {
		t.Errorf("AsAppError should unwrap to the original AppError")
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Errorf("AsAppError should fail for plain errors")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewNotFoundError("task", "1")
	if !IsErrorType(err, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should match not found")
	}
	if IsErrorType(err, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should not match database")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeNotFound) {
		t.Errorf("IsErrorType should return false for plain errors")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("name is required", nil),
			expected: "name is required",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "3"),
			expected: "task not found: 3",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("insert", errors.New("locked")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", "5s"),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "External service error",
			err:      NewExternalServiceError("gemini", "AI_UNAVAILABLE", "failed to reach the AI service", errors.New("x")),
			expected: "failed to reach the AI service",
		},
		{
			name:     "Plain error",
			err:      errors.New("plain"),
			expected: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(NewNotFoundError("task", "1")); got != "NOT_FOUND" {
		t.Errorf("GetErrorCode() = %v, want NOT_FOUND", got)
	}
	if got := GetErrorCode(errors.New("plain")); got != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", got)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("bad", nil), false},
		{"Not found error", NewNotFoundError("task", "1"), false},
		{"Invalid input error", NewInvalidInputError("id", "x", "not a number"), false},
		{"Database error", NewDatabaseError("insert", nil), true},
		{"Timeout error", NewTimeoutError("query", "1s"), true},
		{"External service error", NewExternalServiceError("gemini", "AI_UNAVAILABLE", "down", nil), true},
		{"Plain error", errors.New("plain"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFields(t *testing.T) {
	fields := Fields(fmt.Errorf("load: %w", NewDatabaseError("list tasks", errors.New("locked"))))
	if fields["error_type"] != "database" || fields["operation"] != "list tasks" {
		t.Errorf("Fields() = %v, want database fields", fields)
	}

	fields = Fields(errors.New("plain"))
	if fields["error_code"] != CodeUnknown {
		t.Errorf("Fields() = %v, want unknown code", fields)
	}
}

func TestGetUserMessage_UnknownType(t *testing.T) {
	err := &AppError{Type: ErrorType("permission"), Message: "internal detail"}
	if got := GetUserMessage(err); got != "An unexpected error occurred. Please try again." {
		t.Errorf("GetUserMessage() = %v", got)
	}
}
