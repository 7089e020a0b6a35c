package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
)

// Handlers bundles the constructed handlers for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// RouterOptions carries the cross-cutting pieces the routes need besides the
// handlers themselves.
type RouterOptions struct {
	AuthService   service.AuthService
	UserRepo      repository.UserRepository
	AuthRateLimit float64
	AuthRateBurst int
	HealthCheck   gin.HandlerFunc
}

// RegisterRoutes mounts the v1 API on the engine. Every route under /api/v1
// passes through Authenticate, so handlers always see a resolved actor.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouterOptions) {
	if opts.HealthCheck != nil {
		r.GET("/healthz", opts.HealthCheck)
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Authenticate(opts.AuthService, opts.UserRepo))

	auth := v1.Group("/auth")
	if opts.AuthRateLimit > 0 {
		auth.Use(middleware.RateLimit(opts.AuthRateLimit, opts.AuthRateBurst))
	}
	auth.POST("/signup", h.Auth.SignUp)
	auth.POST("/token", h.Auth.Token)

	users := v1.Group("/users")
	{
		admin := middleware.Authorize(permissions.AdminOnly{})
		users.GET("", admin, h.User.List)
		users.POST("", admin, h.User.Create)
		// :username routes cover the "me" alias, so admin gating happens
		// inside the handler.
		users.GET("/:username", h.User.Get)
		users.PATCH("/:username", h.User.Update)
		users.DELETE("/:username", h.User.Delete)
	}

	adminOrRead := middleware.Authorize(permissions.AdminOrReadOnly{})

	categories := v1.Group("/categories", adminOrRead)
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.DELETE("/:slug", h.Category.Delete)
	}

	genres := v1.Group("/genres", adminOrRead)
	{
		genres.GET("", h.Genre.List)
		genres.POST("", h.Genre.Create)
		genres.DELETE("/:slug", h.Genre.Delete)
	}

	titles := v1.Group("/titles", adminOrRead)
	{
		titles.GET("", h.Title.List)
		titles.POST("", h.Title.Create)
		titles.GET("/:title_id", h.Title.Get)
		titles.PATCH("/:title_id", h.Title.Update)
		titles.DELETE("/:title_id", h.Title.Delete)
	}

	authorOrPrivileged := middleware.Authorize(permissions.AuthorOrPrivileged{})

	reviews := v1.Group("/titles/:title_id/reviews", authorOrPrivileged)
	{
		reviews.GET("", h.Review.List)
		reviews.POST("", h.Review.Create)
		reviews.GET("/:review_id", h.Review.Get)
		reviews.PATCH("/:review_id", h.Review.Update)
		reviews.DELETE("/:review_id", h.Review.Delete)
	}

	comments := v1.Group("/titles/:title_id/reviews/:review_id/comments", authorOrPrivileged)
	{
		comments.GET("", h.Comment.List)
		comments.POST("", h.Comment.Create)
		comments.GET("/:comment_id", h.Comment.Get)
		comments.PATCH("/:comment_id", h.Comment.Update)
		comments.DELETE("/:comment_id", h.Comment.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}
