package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"infoco/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	emailRegex *regexp.Regexp
	phoneRegex *regexp.Regexp
	config     *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithConfig(nil)
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		emailRegex: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		phoneRegex: regexp.MustCompile(`^\+?[0-9 ()\-]{8,20}$`),
		config:     cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the rune count of a trimmed string is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidEmail checks the loose shape of an email address
func (v *Validator) IsValidEmail(email string) bool {
	return v.emailRegex.MatchString(email)
}

// IsValidPhone checks that a phone number holds only digits and common separators
func (v *Validator) IsValidPhone(phone string) bool {
	return v.phoneRegex.MatchString(phone)
}

// IsValidID checks if a record ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsNonNegativeAmount checks that a money amount is zero or more
func (v *Validator) IsNonNegativeAmount(amount decimal.Decimal) bool {
	return !amount.IsNegative()
}

// IsValidHours checks that worked hours are within configured bounds
func (v *Validator) IsValidHours(hours float64) bool {
	return hours >= 0 && hours <= v.getMaxTaskHours()
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	// twenty years back, five years ahead
	earliest := now.AddDate(-20, 0, 0)
	latest := now.AddDate(5, 0, 0)

	return t.After(earliest) && t.Before(latest)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getNameMaxLength returns configured maximum name length or default
func (v *Validator) getNameMaxLength() int {
	if v.config != nil && v.config.Validation.NameMaxLength > 0 {
		return v.config.Validation.NameMaxLength
	}
	return 120
}

// getTitleMaxLength returns configured maximum task title length or default
func (v *Validator) getTitleMaxLength() int {
	if v.config != nil && v.config.Validation.TitleMaxLength > 0 {
		return v.config.Validation.TitleMaxLength
	}
	return 255
}

// getMaxTaskHours returns configured maximum hours for a single task or default
func (v *Validator) getMaxTaskHours() float64 {
	if v.config != nil && v.config.Validation.MaxTaskHours > 0 {
		return v.config.Validation.MaxTaskHours
	}
	return 24
}

// getQuestionMaxLength returns configured maximum AI question length or default
func (v *Validator) getQuestionMaxLength() int {
	if v.config != nil && v.config.Validation.QuestionMaxLength > 0 {
		return v.config.Validation.QuestionMaxLength
	}
	return 2000
}
