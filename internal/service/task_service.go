package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskFlow/internal/logger"
	"taskFlow/internal/models/task"
	"taskFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка инвариантов модели и перевод ошибок
// хранилища в бизнес-ошибки

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

type CreateTaskParams struct {
	Title       string
	Description string
	Status      task.Status
	Priority    task.Priority
	Category    string
	DueDate     *time.Time
}

func (s *TaskService) CreateTask(ctx context.Context, p CreateTaskParams) (*task.Task, error) {
	t := &task.Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Status:      p.Status,
		Priority:    p.Priority,
		Category:    strings.TrimSpace(p.Category),
		DueDate:     p.DueDate,
	}

	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == "" {
		t.Priority = task.PriorityMedium
	}

	if err := t.Validate(); err != nil {
		return nil, asBusinessError(err)
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", t.ID.String()))
	return t, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, rawID string) (*task.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, NewNotFound(rawID)
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", rawID))
			return nil, NewNotFound(rawID)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter repository.ListFilter, sortBy repository.Sort) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, filter, sortBy)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

// UpdateTask применяет частичное обновление: меняются только поля,
// заданные опциями, запись перепроверяется целиком перед записью
func (s *TaskService) UpdateTask(ctx context.Context, rawID string, options ...task.TaskOption) (*task.Task, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, NewNotFound(rawID)
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", rawID))
			return nil, NewNotFound(rawID)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	for _, opt := range options {
		opt(t)
	}

	// при невалидном обновлении хранимая запись остаётся нетронутой
	if err := t.Validate(); err != nil {
		return nil, asBusinessError(err)
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(rawID)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", rawID))
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return NewNotFound(rawID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", rawID))
			return NewNotFound(rawID)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", rawID))
	return nil
}

func (s *TaskService) GetStats(ctx context.Context) (task.Stats, error) {
	tasks, err := s.repo.List(ctx, repository.ListFilter{}, repository.DefaultSort())
	if err != nil {
		return task.Stats{}, fmt.Errorf("получение задач: %w", err)
	}
	return task.CollectStats(tasks), nil
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// parseID разбирает идентификатор; кривой id равнозначен отсутствию записи
func parseID(rawID string) (uuid.UUID, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("пустой id")
	}
	return id, nil
}

func asBusinessError(err error) error {
	var vErr *task.ValidationError
	if errors.As(err, &vErr) {
		return NewValidationError(vErr)
	}
	return err
}
