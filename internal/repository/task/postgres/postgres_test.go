package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"taskFlow/internal/models/task"
	"taskFlow/internal/repository"
	"taskFlow/internal/repository/task/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresTestSuite - интеграционные тесты с PostgreSQL в контейнере
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	connString string
	ctx        context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	require.NoError(s.T(), postgres.Migrate(s.connString))

	s.storage, err = postgres.New(s.ctx, s.connString, postgres.PoolConfig{MaxConns: 5, MinConns: 1})
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицу перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	tasks, err := s.storage.List(s.ctx, repository.ListFilter{}, repository.DefaultSort())
	require.NoError(s.T(), err)
	for _, t := range tasks {
		require.NoError(s.T(), s.storage.Delete(s.ctx, t.ID))
	}
}

func (s *PostgresTestSuite) newTask(title string, status task.Status, priority task.Priority) *task.Task {
	return &task.Task{
		ID:       uuid.New(),
		Title:    title,
		Status:   status,
		Priority: priority,
	}
}

func (s *PostgresTestSuite) TestCreateAndGet() {
	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Millisecond)

	created := s.newTask("Buy groceries", task.StatusPending, task.PriorityHigh)
	created.Description = "Milk, bread, eggs"
	created.Category = "Shopping"
	created.DueDate = &due

	require.NoError(s.T(), s.storage.Create(s.ctx, created))
	assert.False(s.T(), created.CreatedAt.IsZero())
	assert.False(s.T(), created.UpdatedAt.IsZero())

	got, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)
	assert.Equal(s.T(), "Buy groceries", got.Title)
	assert.Equal(s.T(), "Milk, bread, eggs", got.Description)
	assert.Equal(s.T(), task.StatusPending, got.Status)
	assert.Equal(s.T(), task.PriorityHigh, got.Priority)
	assert.Equal(s.T(), "Shopping", got.Category)
	require.NotNil(s.T(), got.DueDate)
	assert.True(s.T(), got.DueDate.Equal(due))
}

func (s *PostgresTestSuite) TestGetNotFound() {
	_, err := s.storage.GetByID(s.ctx, uuid.New())
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestUpdate() {
	created := s.newTask("Before", task.StatusPending, task.PriorityLow)
	require.NoError(s.T(), s.storage.Create(s.ctx, created))

	updated := created.Clone()
	updated.Title = "After"
	updated.Status = task.StatusCompleted
	require.NoError(s.T(), s.storage.Update(s.ctx, updated))

	got, err := s.storage.GetByID(s.ctx, created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "After", got.Title)
	assert.Equal(s.T(), task.StatusCompleted, got.Status)
	assert.True(s.T(), got.CreatedAt.Equal(created.CreatedAt))
	assert.False(s.T(), got.UpdatedAt.Before(got.CreatedAt))
}

func (s *PostgresTestSuite) TestUpdateNotFound() {
	ghost := s.newTask("Ghost", task.StatusPending, task.PriorityLow)
	assert.ErrorIs(s.T(), s.storage.Update(s.ctx, ghost), repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestDelete() {
	created := s.newTask("Doomed", task.StatusPending, task.PriorityLow)
	require.NoError(s.T(), s.storage.Create(s.ctx, created))

	require.NoError(s.T(), s.storage.Delete(s.ctx, created.ID))

	_, err := s.storage.GetByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	assert.ErrorIs(s.T(), s.storage.Delete(s.ctx, created.ID), repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestListFilter() {
	a := s.newTask("A", task.StatusPending, task.PriorityHigh)
	b := s.newTask("B", task.StatusPending, task.PriorityLow)
	c := s.newTask("C", task.StatusCompleted, task.PriorityHigh)
	for _, t := range []*task.Task{a, b, c} {
		require.NoError(s.T(), s.storage.Create(s.ctx, t))
	}

	pending := task.StatusPending
	high := task.PriorityHigh
	got, err := s.storage.List(s.ctx, repository.ListFilter{Status: &pending, Priority: &high}, repository.DefaultSort())
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), a.ID, got[0].ID)
}

func (s *PostgresTestSuite) TestListSearch() {
	groceries := s.newTask("Buy groceries", task.StatusPending, task.PriorityMedium)
	store := s.newTask("Visit market", task.StatusPending, task.PriorityMedium)
	store.Category = "Grocery"
	other := s.newTask("Walk the dog", task.StatusPending, task.PriorityMedium)
	for _, t := range []*task.Task{groceries, store, other} {
		require.NoError(s.T(), s.storage.Create(s.ctx, t))
	}

	got, err := s.storage.List(s.ctx, repository.ListFilter{Search: "GROC"}, repository.DefaultSort())
	require.NoError(s.T(), err)
	assert.Len(s.T(), got, 2)

	// метасимволы LIKE ищутся буквально
	got, err = s.storage.List(s.ctx, repository.ListFilter{Search: "%"}, repository.DefaultSort())
	require.NoError(s.T(), err)
	assert.Empty(s.T(), got)
}

func (s *PostgresTestSuite) TestListSort() {
	soon := time.Now().Add(time.Hour)
	later := time.Now().Add(48 * time.Hour)

	banana := s.newTask("banana", task.StatusPending, task.PriorityLow)
	banana.DueDate = &later
	require.NoError(s.T(), s.storage.Create(s.ctx, banana))

	time.Sleep(5 * time.Millisecond)

	apple := s.newTask("Apple", task.StatusPending, task.PriorityHigh)
	apple.DueDate = &soon
	require.NoError(s.T(), s.storage.Create(s.ctx, apple))

	time.Sleep(5 * time.Millisecond)

	cherry := s.newTask("cherry", task.StatusPending, task.PriorityMedium)
	require.NoError(s.T(), s.storage.Create(s.ctx, cherry))

	titles := func(tasks []*task.Task) []string {
		out := make([]string, len(tasks))
		for i, t := range tasks {
			out[i] = t.Title
		}
		return out
	}

	got, err := s.storage.List(s.ctx, repository.ListFilter{}, repository.DefaultSort())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"cherry", "Apple", "banana"}, titles(got))

	got, err = s.storage.List(s.ctx, repository.ListFilter{}, repository.ParseSort("dueDate"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Apple", "banana", "cherry"}, titles(got))

	got, err = s.storage.List(s.ctx, repository.ListFilter{}, repository.ParseSort("-priority"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Apple", "cherry", "banana"}, titles(got))

	got, err = s.storage.List(s.ctx, repository.ListFilter{}, repository.ParseSort("title"))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Apple", "banana", "cherry"}, titles(got))
}

func (s *PostgresTestSuite) TestEnumConstraints() {
	bad := s.newTask("Bad status", "archived", task.PriorityLow)
	assert.Error(s.T(), s.storage.Create(s.ctx, bad))
}

func (s *PostgresTestSuite) TestHealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() || os.Getenv("SKIP_INTEGRATION") != "" {
		t.Skip("интеграционные тесты пропущены")
	}
	suite.Run(t, new(PostgresTestSuite))
}
