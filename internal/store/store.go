// Package store holds the authoritative set of todos behind a backend-agnostic
// interface. Two backends exist: an in-memory ordered list guarded by a
// reader/writer lock, and a SQL table (sqlite or postgres) relying on the
// database's per-statement atomicity. Callers cannot tell them apart.
package store

import (
	"context"
	"errors"

	"todo-service/internal/models"
)

var (
	// ErrNotFound means the operation referenced an id with no matching todo.
	ErrNotFound = errors.New("todo not found")
	// ErrConflict means an insert referenced an id that already exists.
	ErrConflict = errors.New("todo id already exists")
)

// Store is the todo store contract. Errors other than ErrNotFound and
// ErrConflict are persistence faults and should be treated as server errors.
type Store interface {
	// List returns a consistent snapshot of all todos in insertion order.
	List(ctx context.Context) ([]models.Todo, error)
	// Get returns the todo with the given id, or ErrNotFound.
	Get(ctx context.Context, id uint32) (models.Todo, error)
	// Insert adds a fully formed todo. Returns ErrConflict if the id is taken.
	Insert(ctx context.Context, todo models.Todo) error
	// Update replaces the todo with a matching id. Returns ErrNotFound if absent.
	Update(ctx context.Context, todo models.Todo) error
	// Toggle flips the completed flag and returns its new value.
	// Concurrent toggles of the same id never lose an update.
	Toggle(ctx context.Context, id uint32) (bool, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
