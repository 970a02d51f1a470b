package client

import (
	"context"
	"errors"
	"sync"

	"taskFlow/internal/handlers/dto"
	"taskFlow/internal/logger"
	"taskFlow/internal/models/task"

	"go.uber.org/zap"
)

const msgConnectFailed = "Failed to connect to server"

// State - снимок состояния списка задач для UI-слоя
type State struct {
	Tasks   []task.Task
	Loading bool
	Err     string
	Filters Filters
}

// Hub - единственный источник правды о списке задач на клиенте.
// Все изменения состояния проходят через него; после каждой успешной
// мутации список перезагружается целиком, подтверждённое серверное
// состояние всегда важнее локального
type Hub struct {
	api      *Client
	onChange func(State)

	mtx     sync.Mutex
	state   State
	seq     uint64 // номер последней запущенной загрузки
	applied uint64 // номер последней применённой загрузки
}

// NewHub создаёт контейнер состояния. onChange (может быть nil)
// вызывается со снимком после каждого изменения состояния
func NewHub(api *Client, onChange func(State)) *Hub {
	h := &Hub{
		api:      api,
		onChange: onChange,
	}
	h.state.Filters = DefaultFilters()
	return h
}

// State возвращает независимый снимок текущего состояния
func (h *Hub) State() State {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() State {
	snap := h.state
	snap.Tasks = make([]task.Task, len(h.state.Tasks))
	copy(snap.Tasks, h.state.Tasks)
	return snap
}

func (h *Hub) notify() {
	if h.onChange == nil {
		return
	}
	h.onChange(h.State())
}

// SetFilters сохраняет критерии выборки и перезагружает список
func (h *Hub) SetFilters(ctx context.Context, f Filters) {
	h.mtx.Lock()
	h.state.Filters = f
	h.mtx.Unlock()

	h.Refetch(ctx)
}

// Refetch перезагружает список по текущим критериям. Каждая загрузка
// получает монотонный номер: ответ, который обогнал более новый,
// отбрасывается и не затирает свежее состояние
func (h *Hub) Refetch(ctx context.Context) {
	h.mtx.Lock()
	h.seq++
	seq := h.seq
	f := h.state.Filters
	h.state.Loading = true
	h.state.Err = ""
	h.mtx.Unlock()
	h.notify()

	tasks, err := h.api.ListTasks(ctx, f)

	h.mtx.Lock()
	if seq < h.applied {
		logger.Info("Hub: Устаревший ответ отброшен",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", h.applied))
		h.mtx.Unlock()
		return
	}
	h.applied = seq

	if err != nil {
		h.state.Err = errMessage(err)
	} else {
		h.state.Tasks = tasks
	}
	if seq == h.seq {
		h.state.Loading = false
	}
	h.mtx.Unlock()
	h.notify()
}

// CreateTask создаёт задачу; при успехе список перезагружается
func (h *Hub) CreateTask(ctx context.Context, req dto.CreateTaskRequest) bool {
	if _, err := h.api.CreateTask(ctx, req); err != nil {
		h.setError(err)
		return false
	}
	h.Refetch(ctx)
	return true
}

// UpdateTask частично обновляет задачу; при успехе список перезагружается
func (h *Hub) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) bool {
	if _, err := h.api.UpdateTask(ctx, id, req); err != nil {
		h.setError(err)
		return false
	}
	h.Refetch(ctx)
	return true
}

// DeleteTask удаляет задачу; при успехе список перезагружается
func (h *Hub) DeleteTask(ctx context.Context, id string) bool {
	if err := h.api.DeleteTask(ctx, id); err != nil {
		h.setError(err)
		return false
	}
	h.Refetch(ctx)
	return true
}

// ToggleStatus переводит задачу на следующий статус цикла
// pending -> in-progress -> completed -> pending
func (h *Hub) ToggleStatus(ctx context.Context, t task.Task) bool {
	next := string(t.Status.Next())
	return h.UpdateTask(ctx, t.ID.String(), dto.UpdateTaskRequest{Status: &next})
}

// Stats - сводка по текущему снимку списка
func (h *Hub) Stats() task.Stats {
	snap := h.State()
	tasks := make([]*task.Task, len(snap.Tasks))
	for i := range snap.Tasks {
		tasks[i] = &snap.Tasks[i]
	}
	return task.CollectStats(tasks)
}

// setError записывает сообщение об ошибке, список остаётся прежним
func (h *Hub) setError(err error) {
	h.mtx.Lock()
	h.state.Err = errMessage(err)
	h.mtx.Unlock()
	h.notify()
}

// errMessage: ошибка из конверта показывается как есть, транспортная
// заменяется общим сообщением о недоступности сервера
func errMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgConnectFailed
}
