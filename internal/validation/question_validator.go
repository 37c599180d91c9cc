package validation

// ValidateQuestion checks the question typed for an AI analysis and returns it trimmed
func (v *Validator) ValidateQuestion(question string) (string, error) {
	trimmed := v.TrimAndValidateString(question)

	validationError := NewValidationError()
	maxLen := v.getQuestionMaxLength()
	if !v.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("question")
	} else if !v.IsValidStringLength(trimmed, 1, maxLen) {
		validationError.AddInvalidLengthError("question", trimmed, 1, maxLen)
	}

	if err := validationError.ErrorOrNil(); err != nil {
		return "", err
	}
	return trimmed, nil
}
