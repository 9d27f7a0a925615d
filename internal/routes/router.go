package routes

import (
	"todo-service/internal/config"
	"todo-service/internal/controller"
	"todo-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func Router(ct *controller.Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Liveness and readiness for load balancers and probes
	router.GET("/", ct.Index)
	router.GET("/ready", ct.Ready)

	router.GET("/todos", ct.ListTodos)
	router.GET("/todos/:id", ct.GetTodo)

	// Writes: JWT required when a secret is configured
	writes := router.Group("")
	if config.Get().JWTSecret != "" {
		writes.Use(middleware.AuthMiddleware())
	}
	{
		writes.POST("/todos", ct.CreateTodo)
		writes.PUT("/todos", ct.UpdateTodo)
		writes.POST("/toggle/:id", ct.ToggleTodo)
	}

	return router
}
