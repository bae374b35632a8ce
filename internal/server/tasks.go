package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskflow/internal/models"
)

// handleListTasks returns every stored task in insertion order.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// handleCreateTask validates and persists a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var input models.NewTask
	if err := c.ShouldBindJSON(&input); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	task, err := s.store.CreateTask(c.Request.Context(), input)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// handleGetTask fetches one task by id.
func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleUpdateTask applies a partial update to an existing task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
		return
	}

	task, err := s.store.UpdateTask(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// handleDeleteTask removes a task. Deleting an absent task still succeeds.
func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleSummary computes the aggregate dashboard view.
func (s *Server) handleSummary(c *gin.Context) {
	sum, err := s.store.Summary(c.Request.Context(), time.Now())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
