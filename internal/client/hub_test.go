package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"taskFlow/internal/client"
	"taskFlow/internal/handlers"
	"taskFlow/internal/handlers/dto"
	"taskFlow/internal/models/task"
	"taskFlow/internal/repository/task/inmemory"
	"taskFlow/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStack поднимает полный стек: inmemory-хранилище, сервис,
// HTTP-сервер и hub поверх него
func newTestStack(t *testing.T) (*client.Hub, *client.Client) {
	t.Helper()

	repo := inmemory.NewTaskStorage()
	svc := service.NewTaskService(repo)
	h := handlers.NewTaskHandler(&svc)

	srv := httptest.NewServer(handlers.Routes(&h))
	t.Cleanup(srv.Close)

	api := client.New(srv.URL, 5*time.Second)
	return client.NewHub(api, nil), api
}

func TestHub_InitialState(t *testing.T) {
	hub, _ := newTestStack(t)

	state := hub.State()
	assert.Empty(t, state.Tasks)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, client.DefaultFilters(), state.Filters)
}

func TestHub_CreateAndRefetch(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	ok := hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Buy groceries", Priority: "high"})
	require.True(t, ok)

	// после успешной мутации список перечитан с сервера
	state := hub.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Buy groceries", state.Tasks[0].Title)
	assert.Equal(t, task.PriorityHigh, state.Tasks[0].Priority)
	assert.Empty(t, state.Err)
	assert.False(t, state.Loading)
}

func TestHub_CreateValidationError(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Existing"}))

	ok := hub.CreateTask(ctx, dto.CreateTaskRequest{Title: ""})
	assert.False(t, ok)

	// сообщение из конверта, прежний список не тронут
	state := hub.State()
	assert.Equal(t, "Title is required", state.Err)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Existing", state.Tasks[0].Title)
}

func TestHub_UpdateTask(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Before"}))
	id := hub.State().Tasks[0].ID.String()

	title := "After"
	ok := hub.UpdateTask(ctx, id, dto.UpdateTaskRequest{Title: &title})
	require.True(t, ok)

	state := hub.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "After", state.Tasks[0].Title)
}

func TestHub_DeleteTask(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Doomed"}))
	id := hub.State().Tasks[0].ID.String()

	require.True(t, hub.DeleteTask(ctx, id))
	assert.Empty(t, hub.State().Tasks)

	// повторное удаление - ошибка из конверта
	assert.False(t, hub.DeleteTask(ctx, id))
	assert.Equal(t, "Task not found", hub.State().Err)
}

// TestHub_ToggleStatus тестирует полный цикл переключения статуса
func TestHub_ToggleStatus(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Cycle me"}))

	current := func() task.Task { return hub.State().Tasks[0] }
	assert.Equal(t, task.StatusPending, current().Status)

	require.True(t, hub.ToggleStatus(ctx, current()))
	assert.Equal(t, task.StatusInProgress, current().Status)

	require.True(t, hub.ToggleStatus(ctx, current()))
	assert.Equal(t, task.StatusCompleted, current().Status)

	// цикл замыкается: completed -> pending
	require.True(t, hub.ToggleStatus(ctx, current()))
	assert.Equal(t, task.StatusPending, current().Status)
}

func TestHub_SetFilters(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Buy groceries", Priority: "high"}))
	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Walk the dog", Priority: "low"}))

	f := client.DefaultFilters()
	f.Priority = "high"
	hub.SetFilters(ctx, f)

	state := hub.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Buy groceries", state.Tasks[0].Title)
	assert.Equal(t, f, state.Filters)

	f.Priority = "all"
	f.Search = "dog"
	hub.SetFilters(ctx, f)

	state = hub.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Walk the dog", state.Tasks[0].Title)
}

// TestHub_ConnectivityError: транспортная ошибка - общее сообщение,
// прежний список сохраняется
func TestHub_ConnectivityError(t *testing.T) {
	repo := inmemory.NewTaskStorage()
	svc := service.NewTaskService(repo)
	h := handlers.NewTaskHandler(&svc)
	srv := httptest.NewServer(handlers.Routes(&h))

	api := client.New(srv.URL, time.Second)
	hub := client.NewHub(api, nil)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Survivor"}))
	require.Len(t, hub.State().Tasks, 1)

	srv.Close()

	ok := hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Unreachable"})
	assert.False(t, ok)

	state := hub.State()
	assert.Equal(t, "Failed to connect to server", state.Err)
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "Survivor", state.Tasks[0].Title)
}

// TestHub_StaleResponseDiscarded: ответ, обогнанный более новым,
// не затирает свежее состояние
func TestHub_StaleResponseDiscarded(t *testing.T) {
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})

	var reqCount int
	var mtx sync.Mutex

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mtx.Lock()
		reqCount++
		n := reqCount
		mtx.Unlock()

		tasks := []task.Task{{Title: "fresh", Status: task.StatusPending, Priority: task.PriorityMedium}}
		if n == 1 {
			close(firstArrived)
			<-releaseFirst
			tasks[0].Title = "stale"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": tasks})
	}))
	defer srv.Close()

	api := client.New(srv.URL, 5*time.Second)
	hub := client.NewHub(api, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Refetch(ctx) // зависнет на сервере
	}()

	<-firstArrived
	hub.Refetch(ctx) // более новая загрузка применяется первой
	require.Len(t, hub.State().Tasks, 1)
	assert.Equal(t, "fresh", hub.State().Tasks[0].Title)

	close(releaseFirst)
	wg.Wait()

	// устаревший ответ отброшен
	state := hub.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, "fresh", state.Tasks[0].Title)
	assert.False(t, state.Loading)
}

func TestHub_OnChangeNotifications(t *testing.T) {
	repo := inmemory.NewTaskStorage()
	svc := service.NewTaskService(repo)
	h := handlers.NewTaskHandler(&svc)
	srv := httptest.NewServer(handlers.Routes(&h))
	defer srv.Close()

	var mtx sync.Mutex
	var states []client.State

	api := client.New(srv.URL, 5*time.Second)
	hub := client.NewHub(api, func(s client.State) {
		mtx.Lock()
		states = append(states, s)
		mtx.Unlock()
	})

	hub.Refetch(context.Background())

	mtx.Lock()
	defer mtx.Unlock()
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[1].Loading)
}

func TestHub_Stats(t *testing.T) {
	hub, _ := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "One"}))
	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "Two", Status: "completed"}))

	stats := hub.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 50, stats.CompletionRate)
}

// TestClient_GetStats тестирует серверную сводку через HTTP
func TestClient_GetStats(t *testing.T) {
	hub, api := newTestStack(t)
	ctx := context.Background()

	require.True(t, hub.CreateTask(ctx, dto.CreateTaskRequest{Title: "One"}))

	stats, err := api.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Pending)
}
