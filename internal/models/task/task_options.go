package task

import (
	"strings"
	"time"
)

// TaskOption - функция частичного обновления: меняет только своё поле,
// остальные остаются нетронутыми
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(t *Task) {
		t.Title = strings.TrimSpace(title)
	}
}

func WithDescription(description string) TaskOption {
	return func(t *Task) {
		t.Description = strings.TrimSpace(description)
	}
}

func WithStatus(status Status) TaskOption {
	return func(t *Task) {
		t.Status = status
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(t *Task) {
		t.Priority = priority
	}
}

func WithCategory(category string) TaskOption {
	return func(t *Task) {
		t.Category = strings.TrimSpace(category)
	}
}

func WithDueDate(dueDate *time.Time) TaskOption {
	return func(t *Task) {
		t.DueDate = dueDate
	}
}
