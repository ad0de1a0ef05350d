package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskvault/internal/auth"
	dom "taskvault/internal/domain"
	"taskvault/internal/dto"
	"taskvault/internal/service"
)

// TaskHandler serves the protected /tasks routes. Every handler reads the
// authenticated user ID from the gin context (set by the auth middleware)
// and passes it into the service explicitly.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	requesterID := auth.UserIDFromContext(c)
	t, err := h.svc.Create(c.Request.Context(), requesterID,
		req.Title, req.Description, req.Priority, req.StartAt, req.EndAt)
	if err != nil {
		if errors.Is(err, service.ErrWindowPast) || errors.Is(err, service.ErrWindowOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.TaskToResponse(t))
}

// List godoc
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BasicAuth
// @Param        priority  query  string  false  "Exact priority filter"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/ [get]
func (h *TaskHandler) List(c *gin.Context) {
	requesterID := auth.UserIDFromContext(c)
	var list []dom.Task
	var err error
	if priority := c.Query("priority"); priority != "" {
		list, err = h.svc.ListByPriority(c.Request.Context(), requesterID, priority)
	} else {
		list, err = h.svc.List(c.Request.Context(), requesterID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: dto.TasksToResponses(list)})
}

// GetByID godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BasicAuth
// @Param        taskId  path  string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	requesterID := auth.UserIDFromContext(c)
	t, err := h.svc.Get(c.Request.Context(), requesterID, taskID)
	if err != nil {
		taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// Update godoc
// @Summary      Update a task (merge of non-null fields)
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        taskId  path  string  true  "Task ID"
// @Param        body    body  dto.UpdateTaskRequest  true  "Partial update"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{taskId} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	requesterID := auth.UserIDFromContext(c)
	t, err := h.svc.Update(c.Request.Context(), requesterID, taskID, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
	})
	if err != nil {
		taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Security     BasicAuth
// @Param        taskId  path  string  true  "Task ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	requesterID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), requesterID, taskID); err != nil {
		taskError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete godoc
// @Summary      Mark a task complete (sets end date to now)
// @Tags         tasks
// @Produce      json
// @Security     BasicAuth
// @Param        taskId  path  string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{taskId}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	taskID, ok := parseUUID(c, "taskId")
	if !ok {
		return
	}
	requesterID := auth.UserIDFromContext(c)
	t, err := h.svc.Complete(c.Request.Context(), requesterID, taskID)
	if err != nil {
		taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// taskError maps service sentinels to HTTP statuses.
func taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTaskForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
