package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a paginated user listing, optionally filtered by a username
// substring via the search query parameter. Admin-only at the route level.
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.userService.List(c.Request.Context(), c.Query("search"), dto.PageParamsFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get resolves /users/:username. The literal "me" addresses the caller's own
// record and is open to any authenticated user; any other username requires
// admin. The alias keeps the check in the handler instead of route middleware.
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")
	if username == selfAlias {
		h.getSelf(c)
		return
	}
	if !h.requireAdmin(c) {
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	username := c.Param("username")
	if username == selfAlias {
		h.updateSelf(c)
		return
	}
	if !h.requireAdmin(c) {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), username, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if username == selfAlias {
		// An account cannot delete itself through the alias.
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
		return
	}
	if !h.requireAdmin(c) {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

const selfAlias = "me"

func (h *UserHandler) getSelf(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) updateSelf(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !actor.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateSelf(c.Request.Context(), actor.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	actor := middleware.ActorFrom(c)
	if !actor.Authenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return false
	}
	return true
}
