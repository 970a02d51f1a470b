package task

import (
	"fmt"
	"unicode/utf8"
)

const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
	CategoryMaxLen    = 50
)

// ValidationError - нарушение ограничения модели данных.
// Message отдаётся клиенту как есть, поэтому текст на английском.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// валидация отдельных полей - применяется перед каждым Create/Update,
// независимо от хранилища

func ValidateTitle(title string) error {
	if title == "" {
		return newValidationError("title", "Title is required")
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return newValidationError("title", fmt.Sprintf("Title cannot exceed %d characters", TitleMaxLen))
	}
	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLen {
		return newValidationError("description", fmt.Sprintf("Description cannot exceed %d characters", DescriptionMaxLen))
	}
	return nil
}

func ValidateCategory(category string) error {
	if utf8.RuneCountInString(category) > CategoryMaxLen {
		return newValidationError("category", fmt.Sprintf("Category cannot exceed %d characters", CategoryMaxLen))
	}
	return nil
}

func ValidateStatus(s Status) error {
	if !s.Valid() {
		return newValidationError("status", fmt.Sprintf("%s is not a valid status", s))
	}
	return nil
}

func ValidatePriority(p Priority) error {
	if !p.Valid() {
		return newValidationError("priority", fmt.Sprintf("%s is not a valid priority", p))
	}
	return nil
}

// Validate проверяет все инварианты задачи целиком
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if err := ValidateCategory(t.Category); err != nil {
		return err
	}
	if err := ValidateStatus(t.Status); err != nil {
		return err
	}
	return ValidatePriority(t.Priority)
}
