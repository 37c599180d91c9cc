package validation

import (
	"infoco/internal/domain"
)

// FinanceValidator validates municipality finance forms
type FinanceValidator struct {
	validator *Validator
}

// NewFinanceValidator creates a new finance validator
func NewFinanceValidator(v *Validator) *FinanceValidator {
	if v == nil {
		v = NewValidator()
	}
	return &FinanceValidator{validator: v}
}

// ValidateFinanceInput checks a finance form. The municipality name comes back upper-cased.
func (fv *FinanceValidator) ValidateFinanceInput(in domain.FinanceInput) (domain.FinanceInput, error) {
	validationError := NewValidationError()
	v := fv.validator

	cleaned := in
	cleaned.Municipality = domain.NormalizeMunicipality(in.Municipality)

	maxLen := v.getNameMaxLength()
	if !v.IsNonEmptyString(cleaned.Municipality) {
		validationError.AddRequiredError("municipality")
	} else if !v.IsValidStringLength(cleaned.Municipality, 1, maxLen) {
		validationError.AddInvalidLengthError("municipality", cleaned.Municipality, 1, maxLen)
	}

	if !v.IsNonNegativeAmount(cleaned.Paid) {
		validationError.AddInvalidRangeError("paid", cleaned.Paid.String(), "must not be negative")
	}
	if !v.IsNonNegativeAmount(cleaned.Pending) {
		validationError.AddInvalidRangeError("pending", cleaned.Pending.String(), "must not be negative")
	}

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.FinanceInput{}, err
	}
	return cleaned, nil
}

// ValidateFinance checks a complete finance record
func (fv *FinanceValidator) ValidateFinance(finance domain.FinanceData) (domain.FinanceData, error) {
	validationError := NewValidationError()
	if !fv.validator.IsValidID(finance.ID) {
		validationError.AddInvalidValueError("id", finance.ID, "must be a positive integer")
	}

	cleaned, err := fv.ValidateFinanceInput(finance.Input())
	validationError.Merge(err)

	if err := validationError.ErrorOrNil(); err != nil {
		return domain.FinanceData{}, err
	}
	return cleaned.WithID(finance.ID), nil
}
