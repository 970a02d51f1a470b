package dto

import (
	"time"

	"taskFlow/internal/models/task"
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest - частичное обновление: nil-поля не трогаются
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Category    *string    `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Options собирает опции обновления только из заданных полей
func (r UpdateTaskRequest) Options() []task.TaskOption {
	var opts []task.TaskOption
	if r.Title != nil {
		opts = append(opts, task.WithTitle(*r.Title))
	}
	if r.Description != nil {
		opts = append(opts, task.WithDescription(*r.Description))
	}
	if r.Status != nil {
		opts = append(opts, task.WithStatus(task.Status(*r.Status)))
	}
	if r.Priority != nil {
		opts = append(opts, task.WithPriority(task.Priority(*r.Priority)))
	}
	if r.Category != nil {
		opts = append(opts, task.WithCategory(*r.Category))
	}
	if r.DueDate != nil {
		opts = append(opts, task.WithDueDate(r.DueDate))
	}
	return opts
}
