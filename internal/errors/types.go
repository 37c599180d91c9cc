package errors

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ErrorType is the category an AppError belongs to. The value doubles as the
// machine-readable name used in logs.
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeDatabase        ErrorType = "database"
	ErrorTypeInvalidInput    ErrorType = "invalid_input"
	ErrorTypeTimeout         ErrorType = "timeout"
	ErrorTypeExternalService ErrorType = "external_service"
)

// Codes shared by every error of a category. External service errors carry
// their own code chosen by the caller.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabase         = "DATABASE_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeTimeout          = "TIMEOUT"
	CodeUnknown          = "UNKNOWN_ERROR"
)

// String returns the category name, or "unknown" for a type outside the set above
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeDatabase,
		ErrorTypeInvalidInput, ErrorTypeTimeout, ErrorTypeExternalService:
		return string(et)
	}
	return "unknown"
}

// AppError is the error returned across package boundaries. Context holds
// details such as the record collection and id, and ends up in log fields.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code only, so every failure of one class satisfies
// errors.Is against that class's sentinel.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType reports whether the error belongs to errorType
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a detail on the error and returns it for chaining
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext returns a detail recorded with WithContext or a constructor
func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}

// Fields returns the error's type, code and context as logrus fields
func (e *AppError) Fields() log.Fields {
	fields := make(log.Fields, len(e.Context)+2)
	for key, value := range e.Context {
		fields[key] = value
	}
	fields["error_type"] = e.Type.String()
	fields["error_code"] = e.Code
	return fields
}
