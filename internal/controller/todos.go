package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"todo-service/internal/cache"
	"todo-service/internal/events"
	"todo-service/internal/models"
	"todo-service/internal/store"
	"todo-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

// Controller translates HTTP requests into store operations and store results
// into status codes. It is indifferent to which backend sits behind the Store
// interface.
type Controller struct {
	store     store.Store
	listGroup singleflight.Group
}

func New(s store.Store) *Controller {
	return &Controller{store: s}
}

// Index returns 200 with an empty body. Liveness.
func (ct *Controller) Index(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Ready returns 200 if the store backend is reachable. Used by readiness probes.
func (ct *Controller) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := ct.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unavailable"})
		return
	}
	c.String(http.StatusOK, "OK")
}

// ListTodos returns all todos as JSON (cache-first as raw bytes). Concurrent
// cache misses collapse into one store read via singleflight.
func (ct *Controller) ListTodos(c *gin.Context) {
	ctx := c.Request.Context()
	if b, ok := cache.GetRawTodos(ctx); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := ct.listGroup.Do("todos", func() (interface{}, error) {
		todos, err := ct.store.List(context.Background())
		if err != nil {
			return nil, err
		}
		return json.Marshal(todos)
	})
	if err != nil {
		logger.Error(ctx, "ListTodos store read failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get todos"})
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	go cache.SetRawTodos(context.Background(), b)
}

// GetTodo returns one todo by id.
func (ct *Controller) GetTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}
	todo, err := ct.store.Get(ctx, id)
	if err != nil {
		ct.fail(c, "GetTodo", err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// CreateTodo decodes the body as a todo and inserts it. The caller supplies
// the id; an already-used id is rejected, not overwritten.
func (ct *Controller) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	var todo models.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := ct.store.Insert(ctx, todo); err != nil {
		ct.fail(c, "CreateTodo", err)
		return
	}
	cache.InvalidateTodos(ctx)
	events.PublishChange(ctx, "insert", todo.ID, todo.Completed)
	c.Status(http.StatusCreated)
}

// UpdateTodo decodes the body as a todo and replaces the stored record with
// the matching id.
func (ct *Controller) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	var todo models.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := ct.store.Update(ctx, todo); err != nil {
		ct.fail(c, "UpdateTodo", err)
		return
	}
	cache.InvalidateTodos(ctx)
	events.PublishChange(ctx, "update", todo.ID, todo.Completed)
	c.Status(http.StatusOK)
}

// ToggleTodo flips the completed flag and returns its new value.
func (ct *Controller) ToggleTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}
	completed, err := ct.store.Toggle(ctx, id)
	if err != nil {
		ct.fail(c, "ToggleTodo", err)
		return
	}
	cache.InvalidateTodos(ctx)
	events.PublishChange(ctx, "toggle", id, completed)
	c.JSON(http.StatusOK, models.ToggleResult{ID: id, Completed: completed})
}

// fail maps a store error to a response. Missing ids and id conflicts are
// routine client errors; anything else is a persistence fault and gets logged.
func (ct *Controller) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todo not found"})
		return
	}
	if errors.Is(err, store.ErrConflict) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todo id already exists"})
		return
	}
	logger.Error(c.Request.Context(), op+" store operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Store operation failed"})
}

func parseID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return 0, false
	}
	return uint32(id), true
}
