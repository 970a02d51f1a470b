package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"taskFlow/internal/logger"
	"taskFlow/internal/models/task"
	repo "taskFlow/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Close() {}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now

	s.storage[taskToCreate.ID] = taskToCreate.Clone()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	// копия, чтобы вызывающий не менял хранимую запись в обход Update
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	taskToUpdate.CreatedAt = existing.CreatedAt
	taskToUpdate.UpdatedAt = time.Now()
	s.storage[taskToUpdate.ID] = taskToUpdate.Clone()

	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) List(ctx context.Context, filter repo.ListFilter, sortBy repo.Sort) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.storage {
		if !matches(t, filter) {
			continue
		}
		res = append(res, t.Clone())
	}

	sortTasks(res, sortBy)
	return res, nil
}

func matches(t *task.Task, filter repo.ListFilter) bool {
	if filter.Status != nil && t.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && t.Priority != *filter.Priority {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}
	return true
}

func sortTasks(tasks []*task.Task, sortBy repo.Sort) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		switch sortBy.Field {
		case repo.SortByDueDate:
			// задачи без дедлайна всегда в конце, независимо от направления
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			}
			if sortBy.Desc {
				return b.DueDate.Before(*a.DueDate)
			}
			return a.DueDate.Before(*b.DueDate)
		case repo.SortByPriority:
			if sortBy.Desc {
				return a.Priority.Rank() > b.Priority.Rank()
			}
			return a.Priority.Rank() < b.Priority.Rank()
		case repo.SortByTitle:
			if sortBy.Desc {
				return strings.ToLower(a.Title) > strings.ToLower(b.Title)
			}
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		default:
			if sortBy.Desc {
				return b.CreatedAt.Before(a.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
