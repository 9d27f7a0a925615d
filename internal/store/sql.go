package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todo-service/internal/models"
)

// SQLStore persists todos in a todos table. It works with both the sqlite and
// postgres drivers; no in-process lock is needed because every operation is a
// single statement and the database makes statements atomic. In particular,
// Toggle is one conditional UPDATE (completed = NOT completed), so two
// concurrent togglers of the same id can never both write the same value.
type SQLStore struct {
	db        *sql.DB
	listQuery string
	rebind    bool // rewrite ? placeholders to $n for postgres
}

// NewSQL wraps an open database handle. driver is the database/sql driver
// name the handle was opened with ("sqlite3" or "postgres"); it selects the
// placeholder style and the insertion-order expression (sqlite tracks
// insertion order in rowid, the postgres schema carries an explicit seq).
func NewSQL(db *sql.DB, driver string) *SQLStore {
	s := &SQLStore{
		db:        db,
		listQuery: `SELECT id, text, completed FROM todos ORDER BY rowid`,
	}
	if driver == "postgres" {
		s.listQuery = `SELECT id, text, completed FROM todos ORDER BY seq`
		s.rebind = true
	}
	return s
}

// q rewrites ? placeholders to $1..$n when the driver is postgres.
func (s *SQLStore) q(query string) string {
	if !s.rebind {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) List(ctx context.Context) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx, s.listQuery)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *SQLStore) Get(ctx context.Context, id uint32) (models.Todo, error) {
	var t models.Todo
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT id, text, completed FROM todos WHERE id = ?`), id).
		Scan(&t.ID, &t.Text, &t.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return t, nil
}

// Insert is one statement: the NOT EXISTS guard makes the duplicate check and
// the insert atomic without driver-specific constraint-error sniffing.
func (s *SQLStore) Insert(ctx context.Context, todo models.Todo) error {
	res, err := s.db.ExecContext(ctx,
		s.q(`INSERT INTO todos (id, text, completed)
		     SELECT ?, ?, ? WHERE NOT EXISTS (SELECT 1 FROM todos WHERE id = ?)`),
		todo.ID, todo.Text, todo.Completed, todo.ID)
	if err != nil {
		return fmt.Errorf("insert todo %d: %w", todo.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert todo %d: %w", todo.ID, err)
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, todo models.Todo) error {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE todos SET text = ?, completed = ? WHERE id = ?`),
		todo.Text, todo.Completed, todo.ID)
	if err != nil {
		return fmt.Errorf("update todo %d: %w", todo.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo %d: %w", todo.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Toggle(ctx context.Context, id uint32) (bool, error) {
	var completed bool
	err := s.db.QueryRowContext(ctx,
		s.q(`UPDATE todos SET completed = NOT completed WHERE id = ? RETURNING completed`), id).
		Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("toggle todo %d: %w", id, err)
	}
	return completed, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
