package service

import (
	"context"

	"taskFlow/internal/models/task"
	"taskFlow/internal/repository"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	GetByID(context.Context, uuid.UUID) (*task.Task, error)
	List(context.Context, repository.ListFilter, repository.Sort) ([]*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, uuid.UUID) error
	HealthCheck(context.Context) error
}
