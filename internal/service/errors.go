package service

import (
	"fmt"

	"taskFlow/internal/models/task"
)

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
)

// BusinessError - ошибка бизнес-логики с кодом для HTTP-слоя.
// Message отдаётся клиенту как есть.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
}

func (b *BusinessError) Error() string {
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func NewNotFound(id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: "Task not found",
		Details: map[string]any{
			"id": id,
		},
	}
}

func NewValidationError(vErr *task.ValidationError) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: vErr.Message,
		Details: map[string]any{
			"field": vErr.Field,
		},
	}
}
