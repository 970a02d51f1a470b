package handlers

import (
	"context"

	"taskFlow/internal/models/task"
	"taskFlow/internal/repository"
	"taskFlow/internal/service"
)

type Service interface {
	CreateTask(context.Context, service.CreateTaskParams) (*task.Task, error)
	GetTaskByID(context.Context, string) (*task.Task, error)
	ListTasks(context.Context, repository.ListFilter, repository.Sort) ([]*task.Task, error)
	UpdateTask(context.Context, string, ...task.TaskOption) (*task.Task, error)
	DeleteTask(context.Context, string) error
	GetStats(context.Context) (task.Stats, error)
	HealthCheck(context.Context) error
}
