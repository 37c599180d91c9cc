package validation

import (
	"infoco/internal/domain"
)

// EmployeeValidator validates employee forms
type EmployeeValidator struct {
	validator *Validator
}

// NewEmployeeValidator creates a new employee validator
func NewEmployeeValidator(v *Validator) *EmployeeValidator {
	if v == nil {
		v = NewValidator()
	}
	return &EmployeeValidator{validator: v}
}

// ValidateEmployeeInput checks a new or edited employee and returns it with trimmed fields
func (ev *EmployeeValidator) ValidateEmployeeInput(in domain.EmployeeInput) (domain.EmployeeInput, error) {
	validationError := NewValidationError()
	v := ev.validator

	cleaned := domain.EmployeeInput{
		Name:       v.TrimAndValidateString(in.Name),
		Role:       v.TrimAndValidateString(in.Role),
		Department: v.TrimAndValidateString(in.Department),
		Email:      v.TrimAndValidateString(in.Email),
		Phone:      v.TrimAndValidateString(in.Phone),
	}

	maxLen := v.getNameMaxLength()
	if !v.IsNonEmptyString(cleaned.Name) {
		validationError.AddRequiredError("name")
	} else if !v.IsValidStringLength(cleaned.Name, 1, maxLen) {
		validationError.AddInvalidLengthError("name", cleaned.Name, 1, maxLen)
	}

	if !v.IsValidStringLength(cleaned.Role, 0, maxLen) {
		validationError.AddInvalidLengthError("role", cleaned.Role, 0, maxLen)
	}
	if !v.IsValidStringLength(cleaned.Department, 0, maxLen) {
		validationError.AddInvalidLengthError("department", cleaned.Department, 0, maxLen)
	}

	if cleaned.Email != "" && !v.IsValidEmail(cleaned.Email) {
		validationError.AddInvalidFormatError("email", cleaned.Email, "name@example.com")
	}
	if cleaned.Phone != "" && !v.IsValidPhone(cleaned.Phone) {
		validationError.AddInvalidFormatError("phone", cleaned.Phone, "digits with optional +, spaces, dashes or parentheses")
	}

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.EmployeeInput{}, err
	}
	return cleaned, nil
}

// ValidateEmployee checks a complete employee record
func (ev *EmployeeValidator) ValidateEmployee(employee domain.Employee) (domain.Employee, error) {
	validationError := NewValidationError()
	if !ev.validator.IsValidID(employee.ID) {
		validationError.AddInvalidValueError("id", employee.ID, "must be a positive integer")
	}

	cleaned, err := ev.ValidateEmployeeInput(employee.Input())
	validationError.Merge(err)

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.Employee{}, err
	}
	return cleaned.WithID(employee.ID), nil
}
