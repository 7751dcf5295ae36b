package backend

import (
	"context"

	"farmbook/internal/core"
)

// TransactionStore covers ledger record persistence.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) error
	CreateTransactions(ctx context.Context, records []core.Transaction) error
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}

// AnimalStore covers the herd register and per-animal history.
type AnimalStore interface {
	CreateAnimal(ctx context.Context, a core.Animal) error
	ListAnimals(ctx context.Context) ([]core.Animal, error)
	GetAnimal(ctx context.Context, id string) (core.Animal, error)
	UpdateAnimal(ctx context.Context, a core.Animal) error
	DeleteAnimal(ctx context.Context, id string) error
	AddAnimalEvent(ctx context.Context, e core.AnimalEvent) error
	ListAnimalEvents(ctx context.Context, animalID string) ([]core.AnimalEvent, error)
}

// TaskStore covers farm reminders.
type TaskStore interface {
	CreateTask(ctx context.Context, t core.Task) error
	UpdateTask(ctx context.Context, t core.Task) error
	ListTasks(ctx context.Context) ([]core.Task, error)
	DueTasks(ctx context.Context, today string) ([]core.Task, error)
	MarkTaskDone(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// Backend represents a unified backend interface that provides all necessary operations
type Backend interface {
	TransactionStore
	AnimalStore
	TaskStore
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
