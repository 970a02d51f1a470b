package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskFlow/internal/handlers/dto"
	"taskFlow/internal/logger"
	"taskFlow/internal/models/task"
	"taskFlow/internal/repository"
	"taskFlow/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// тексты для неклассифицированных ошибок: деталь (ошибка драйвера и т.п.)
// клиенту не утекает
const (
	msgFetchTasksFailed = "Failed to fetch tasks"
	msgFetchTaskFailed  = "Failed to fetch task"
	msgCreateTaskFailed = "Failed to create task"
	msgUpdateTaskFailed = "Failed to update task"
	msgDeleteTaskFailed = "Failed to delete task"
	msgFetchStatsFailed = "Failed to fetch stats"
	msgTaskDeleted      = "Task deleted successfully"
	msgServiceUnhealthy = "Service unavailable"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// GetTasks обрабатывает GET /api/tasks?status=&priority=&search=&sort=
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter := parseListFilter(r)
	sortBy := repository.ParseSort(r.URL.Query().Get("sort"))

	tasks, err := h.TaskService.ListTasks(r.Context(), filter, sortBy)
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "list_tasks"))
		respondError(w, http.StatusInternalServerError, msgFetchTasksFailed)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)))

	respondData(w, http.StatusOK, tasks)
}

// PostTask обрабатывает POST /api/tasks
func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondError(w, http.StatusInternalServerError, msgCreateTaskFailed)
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), service.CreateTaskParams{
		Title:       request.Title,
		Description: request.Description,
		Status:      task.Status(request.Status),
		Priority:    task.Priority(request.Priority),
		Category:    request.Category,
		DueDate:     request.DueDate,
	})
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "create_task"))
		respondError(w, http.StatusInternalServerError, msgCreateTaskFailed)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)))

	respondData(w, http.StatusCreated, created)
}

// GetTaskByID обрабатывает GET /api/tasks/{id}
func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.TaskService.GetTaskByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "get_task"))
		respondError(w, http.StatusInternalServerError, msgFetchTaskFailed)
		return
	}

	respondData(w, http.StatusOK, t)
}

// UpdateTaskByID обрабатывает PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		respondError(w, http.StatusInternalServerError, msgUpdateTaskFailed)
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), id, request.Options()...)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "update_task"))
		respondError(w, http.StatusInternalServerError, msgUpdateTaskFailed)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)))

	respondData(w, http.StatusOK, updated)
}

// DeleteTaskByID обрабатывает DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "delete_task"))
		respondError(w, http.StatusInternalServerError, msgDeleteTaskFailed)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)))

	respondMessage(w, http.StatusOK, msgTaskDeleted)
}

// GetStats обрабатывает GET /api/tasks/stats
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.TaskService.GetStats(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "get_stats"))
		respondError(w, http.StatusInternalServerError, msgFetchStatsFailed)
		return
	}

	respondData(w, http.StatusOK, stats)
}

// HealthCheck обрабатывает GET /health
func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check провален", err)
		respondError(w, http.StatusInternalServerError, msgServiceUnhealthy)
		return
	}
	respondMessage(w, http.StatusOK, "ok")
}

// parseListFilter разбирает query-параметры выборки.
// "all" или отсутствие значения - фильтра по полю нет
func parseListFilter(r *http.Request) repository.ListFilter {
	q := r.URL.Query()
	var filter repository.ListFilter

	if v := q.Get("status"); v != "" && v != "all" {
		status := task.Status(v)
		filter.Status = &status
	}
	if v := q.Get("priority"); v != "" && v != "all" {
		priority := task.Priority(v)
		filter.Priority = &priority
	}
	filter.Search = q.Get("search")

	return filter
}
