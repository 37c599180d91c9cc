package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	ve := NewValidationError()
	assert.Equal(t, "validation error", ve.Error())

	ve.AddRequiredError("name")
	assert.Equal(t, "validation error for field 'name': name is required", ve.Error())

	ve.AddInvalidRangeError("paid", "-1", "must not be negative")
	assert.Equal(t,
		"multiple validation errors: validation error for field 'name': name is required; "+
			"validation error for field 'paid': paid is out of range: must not be negative",
		ve.Error())
}

func TestValidationError_Add(t *testing.T) {
	tests := []struct {
		name     string
		add      func(ve *ValidationError)
		field    string
		kind     ValidationErrorType
		message  string
		hasValue bool
	}{
		{
			name:    "required",
			add:     func(ve *ValidationError) { ve.AddRequiredError("municipality") },
			field:   "municipality",
			kind:    ErrorTypeRequired,
			message: "municipality is required",
		},
		{
			name:     "format",
			add:      func(ve *ValidationError) { ve.AddInvalidFormatError("email", "ana@", "name@domain") },
			field:    "email",
			kind:     ErrorTypeInvalidFormat,
			message:  "email has invalid format, expected: name@domain",
			hasValue: true,
		},
		{
			name:     "length with both bounds",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("title", "", 1, 200) },
			field:    "title",
			kind:     ErrorTypeInvalidLength,
			message:  "title must be between 1 and 200 characters long",
			hasValue: true,
		},
		{
			name:     "length with upper bound",
			add:      func(ve *ValidationError) { ve.AddInvalidLengthError("question", "x", 0, 4000) },
			field:    "question",
			kind:     ErrorTypeInvalidLength,
			message:  "question must be at most 4000 characters long",
			hasValue: true,
		},
		{
			name:     "value",
			add:      func(ve *ValidationError) { ve.AddInvalidValueError("status", "Done", "unknown status") },
			field:    "status",
			kind:     ErrorTypeInvalidValue,
			message:  "status has invalid value: unknown status",
			hasValue: true,
		},
		{
			name:     "range",
			add:      func(ve *ValidationError) { ve.AddInvalidRangeError("hours", 30.0, "must be at most 24") },
			field:    "hours",
			kind:     ErrorTypeInvalidRange,
			message:  "hours is out of range: must be at most 24",
			hasValue: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := NewValidationError()
			tt.add(ve)

			require.Len(t, ve.Errors, 1)
			fe := ve.Errors[0]
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.kind, fe.Type)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, tt.hasValue, fe.Value != nil)
		})
	}
}

func TestValidationError_ErrorOrNil(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())
	assert.NoError(t, ve.ErrorOrNil())

	ve.AddRequiredError("name")
	assert.True(t, ve.HasErrors())
	assert.Same(t, ve, ve.ErrorOrNil())
}

func TestValidationError_Merge(t *testing.T) {
	employee := NewValidationError()
	employee.AddRequiredError("name")

	ve := NewValidationError()
	ve.Merge(fmt.Errorf("employee: %w", employee))
	ve.Merge(&FieldError{Field: "date", Type: ErrorTypeInvalidRange, Message: "date is too far in the future"})
	ve.Merge(nil)
	ve.Merge(fmt.Errorf("unrelated"))

	require.Len(t, ve.Errors, 2)
	assert.Equal(t, "name", ve.Errors[0].Field)
	assert.Equal(t, "date", ve.Errors[1].Field)
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("municipality")
	ve.AddInvalidRangeError("paid", "-5", "must not be negative")
	ve.AddInvalidRangeError("paid", "x", "must be a number")

	assert.Len(t, ve.GetFieldErrors("paid"), 2)
	assert.Len(t, ve.GetFieldErrors("municipality"), 1)
	assert.Empty(t, ve.GetFieldErrors("pending"))
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	assert.Equal(t, "Input validation failed", ve.GetUserFriendlyMessage())

	ve.AddRequiredError("title")
	assert.Equal(t, "title is required", ve.GetUserFriendlyMessage())

	ve.AddInvalidRangeError("hours", -1.0, "must not be negative")
	assert.Equal(t,
		"Multiple validation errors occurred:\n- title is required\n- hours is out of range: must not be negative",
		ve.GetUserFriendlyMessage())
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("create employee: %w", ve)))
	assert.False(t, IsValidationError(&FieldError{Field: "name"}))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
	assert.False(t, IsValidationError(nil))
}
