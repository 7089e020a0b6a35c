package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/apperr"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

const (
	actorKey = "actor"
	userKey  = "currentUser"
)

// Authenticate resolves the request's actor. Requests without an
// Authorization header proceed as anonymous; the permission policies decide
// what anonymous actors may do. A header that is present but invalid is
// always a 401.
//
// The user record is reloaded from storage so role changes take effect
// immediately rather than at token expiry.
func Authenticate(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(actorKey, permissions.Anonymous())
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				// Token for a user that no longer exists.
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			} else {
				// Storage failure, not a credential problem.
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(actorKey, permissions.FromUser(user))
		c.Set(userKey, user)
		c.Next()
	}
}

// ActorFrom returns the actor set by Authenticate, or the anonymous actor
// when the middleware did not run.
func ActorFrom(c *gin.Context) permissions.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return permissions.Anonymous()
	}
	actor, ok := v.(permissions.Actor)
	if !ok {
		return permissions.Anonymous()
	}
	return actor
}

// CurrentUser returns the authenticated user's record, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// SetActor injects an actor directly; used by handler tests.
func SetActor(c *gin.Context, actor permissions.Actor, user *models.User) {
	c.Set(actorKey, actor)
	if user != nil {
		c.Set(userKey, user)
	}
}

// Authorize applies the endpoint-level permission check. Anonymous actors
// get 401, authenticated but under-privileged actors get 403.
func Authorize(policy permissions.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if !policy.AllowsRequest(actor, c.Request.Method) {
			if !actor.Authenticated {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			} else {
				c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
