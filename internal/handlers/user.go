package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskvault/internal/dto"
	"taskvault/internal/service"
)

// UserHandler serves the public /users routes.
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "User body"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/ [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) || errors.Is(err, service.ErrMissingCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, dto.UserToResponse(u))
}

// GetByID godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		userError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Update godoc
// @Summary      Update a user (merge of non-null fields)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path  string  true  "User ID"
// @Param        body    body  dto.UpdateUserRequest  true  "Partial update"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [put]
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.Update(c.Request.Context(), userID, service.UserPatch{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		userError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserToResponse(u))
}

// Delete godoc
// @Summary      Delete a user and their tasks
// @Tags         users
// @Param        userId  path  string  true  "User ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := parseUUID(c, "userId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID); err != nil {
		userError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// userError maps service sentinels to HTTP statuses.
func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
