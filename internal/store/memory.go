package store

import (
	"context"
	"sync"

	"todo-service/internal/models"
)

// MemoryStore keeps todos in an insertion-ordered slice with an id index,
// guarded by a reader/writer lock. The workload is read-heavy, so List and Get
// take shared access and proceed in parallel; writers take exclusive access.
// The lock is only ever held around the in-memory mutation, never across I/O.
type MemoryStore struct {
	mu    sync.RWMutex
	todos []models.Todo
	index map[uint32]int // id -> position in todos
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{index: make(map[uint32]int)}
}

// List returns a snapshot copy, so callers never observe later mutations.
func (s *MemoryStore) List(ctx context.Context) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Todo, len(s.todos))
	copy(out, s.todos)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uint32) (models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Todo{}, ErrNotFound
	}
	return s.todos[i], nil
}

func (s *MemoryStore) Insert(ctx context.Context, todo models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[todo.ID]; ok {
		return ErrConflict
	}
	s.index[todo.ID] = len(s.todos)
	s.todos = append(s.todos, todo)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, todo models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[todo.ID]
	if !ok {
		return ErrNotFound
	}
	s.todos[i] = todo
	return nil
}

func (s *MemoryStore) Toggle(ctx context.Context, id uint32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false, ErrNotFound
	}
	s.todos[i].Completed = !s.todos[i].Completed
	return s.todos[i].Completed, nil
}

// Ping always succeeds: memory is always reachable.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
