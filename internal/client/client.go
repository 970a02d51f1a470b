package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"taskFlow/internal/handlers/dto"
	"taskFlow/internal/models/task"
)

// Filters - активные критерии выборки списка задач
type Filters struct {
	Status   string
	Priority string
	Search   string
	Sort     string
}

func DefaultFilters() Filters {
	return Filters{
		Status:   "all",
		Priority: "all",
		Sort:     "-createdAt",
	}
}

func (f Filters) query() url.Values {
	params := url.Values{}
	if f.Status != "" && f.Status != "all" {
		params.Set("status", f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		params.Set("priority", f.Priority)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Sort != "" {
		params.Set("sort", f.Sort)
	}
	return params
}

// APIError - ошибка, которую сервер вернул в конверте
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client - тонкая обёртка над wire-протоколом задач
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) ListTasks(ctx context.Context, f Filters) ([]task.Task, error) {
	path := "/api/tasks"
	if q := f.query().Encode(); q != "" {
		path += "?" + q
	}

	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*task.Task, error) {
	var created task.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*task.Task, error) {
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) GetStats(ctx context.Context) (task.Stats, error) {
	var stats task.Stats
	if err := c.do(ctx, http.MethodGet, "/api/tasks/stats", nil, &stats); err != nil {
		return task.Stats{}, err
	}
	return stats, nil
}

// do выполняет запрос и разворачивает конверт.
// Транспортная ошибка возвращается как есть, ошибка сервера - как *APIError
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("создание запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("чтение ответа: %w", err)
	}

	if !env.Success {
		return &APIError{StatusCode: res.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("разбор данных: %w", err)
		}
	}
	return nil
}
