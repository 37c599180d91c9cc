package errors

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

func newAppError(errorType ErrorType, code, message string, cause error, context map[string]interface{}) *AppError {
	if context == nil {
		context = make(map[string]interface{})
	}
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: context,
	}
}

// NewValidationError wraps the field errors of a rejected form
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, CodeValidationFailed, message, cause, nil)
}

// NewNotFoundError reports a lookup miss, e.g. NewNotFoundError("task", "7")
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, CodeNotFound,
		fmt.Sprintf("%s not found: %s", resource, identifier), nil,
		map[string]interface{}{"resource": resource, "identifier": identifier})
}

// NewDatabaseError reports a failed repository operation
func NewDatabaseError(operation string, cause error) *AppError {
	return newAppError(ErrorTypeDatabase, CodeDatabase,
		fmt.Sprintf("database operation failed: %s", operation), cause,
		map[string]interface{}{"operation": operation})
}

// NewInvalidInputError reports a flag, argument or request value that cannot be parsed
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, CodeInvalidInput,
		fmt.Sprintf("invalid input for %s: %s", field, reason), nil,
		map[string]interface{}{"field": field, "value": value, "reason": reason})
}

// NewTimeoutError reports an operation that ran past its deadline
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return newAppError(ErrorTypeTimeout, CodeTimeout,
		fmt.Sprintf("operation timed out: %s", operation), nil,
		map[string]interface{}{"operation": operation, "timeout": timeout})
}

// NewExternalServiceError reports a failed call to a third-party service.
// Every failure of one class shares its code; the message is shown to the user as is.
func NewExternalServiceError(service string, code string, message string, cause error) *AppError {
	return newAppError(ErrorTypeExternalService, code, message, cause,
		map[string]interface{}{"service": service})
}

// WrapError wraps err in an AppError of the given type
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newAppError(errorType, errorType.String(), message, err, nil)
}

// IsAppError reports whether err wraps an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError returns the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err wraps an AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// Messages shown instead of the internal message for system errors
var systemMessages = map[ErrorType]string{
	ErrorTypeDatabase: "A database error occurred. Please try again.",
	ErrorTypeTimeout:  "The operation timed out. Please try again.",
}

const unexpectedMessage = "An unexpected error occurred. Please try again."

// GetUserMessage returns the text shown to the user for err
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if msg, ok := systemMessages[appErr.Type]; ok {
		return msg
	}
	if appErr.Type.String() == "unknown" {
		return unexpectedMessage
	}
	return appErr.Message
}

// GetErrorCode returns the AppError code for err, or CodeUnknown
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError reports whether err is a system error rather than a user mistake
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	}
	return true
}

// Fields returns logrus fields describing err. Errors that are not AppErrors
// get the unknown code.
func Fields(err error) log.Fields {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Fields()
	}
	return log.Fields{"error_code": CodeUnknown}
}
