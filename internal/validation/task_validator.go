package validation

import (
	"fmt"

	"infoco/internal/domain"
)

// TaskValidator provides validation for task forms
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTitle validates a task title
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	maxLen := tv.validator.getTitleMaxLength()
	if !tv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		validationError.AddInvalidLengthError("title", trimmed, 1, maxLen)
	}

	return validationError.ErrorOrNil()
}

// ValidateTaskInput checks a new or edited task and returns it with trimmed fields
// and the date reduced to its calendar day.
// The employee reference is not checked against the employee list.
func (tv *TaskValidator) ValidateTaskInput(in domain.TaskInput) (domain.TaskInput, error) {
	validationError := NewValidationError()
	v := tv.validator

	cleaned := in
	cleaned.Title = v.TrimAndValidateString(in.Title)
	cleaned.Description = v.TrimAndValidateString(in.Description)

	validationError.Merge(tv.ValidateTitle(cleaned.Title))

	if !v.IsValidID(cleaned.EmployeeID) {
		validationError.AddInvalidValueError("employee", cleaned.EmployeeID, "an employee must be selected")
	}

	if cleaned.Date.IsZero() {
		validationError.AddRequiredError("date")
	} else if cleaned.Date = domain.CalendarDate(cleaned.Date); !v.IsReasonableDate(cleaned.Date) {
		validationError.AddInvalidRangeError("date", cleaned.Date.Format(domain.DateLayout), "too far from today")
	}

	if !v.IsValidHours(cleaned.Hours) {
		validationError.AddInvalidRangeError("hours", cleaned.Hours, fmt.Sprintf("must be between 0 and %g", v.getMaxTaskHours()))
	}

	if cleaned.Status == "" {
		cleaned.Status = domain.TaskStatusPending
	} else if status, err := domain.ParseTaskStatus(string(cleaned.Status)); err != nil {
		validationError.AddInvalidValueError("status", cleaned.Status, "must be one of Pendente, Em Andamento, Concluída")
	} else {
		cleaned.Status = status
	}

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.TaskInput{}, err
	}
	return cleaned, nil
}

// ValidateTask checks a complete task record
func (tv *TaskValidator) ValidateTask(task domain.Task) (domain.Task, error) {
	validationError := NewValidationError()
	if !tv.validator.IsValidID(task.ID) {
		validationError.AddInvalidValueError("id", task.ID, "must be a positive integer")
	}

	cleaned, err := tv.ValidateTaskInput(task.Input())
	validationError.Merge(err)

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.Task{}, err
	}
	return cleaned.WithID(task.ID), nil
}

// ValidateID validates a record ID
func (tv *TaskValidator) ValidateID(id int64) error {
	return ValidateID(tv.validator, "id", id)
}

// ValidateID validates a positive record ID for the named field
func ValidateID(v *Validator, field string, id int64) error {
	if v.IsValidID(id) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError(field, id, "must be a positive integer")
	return validationError
}
