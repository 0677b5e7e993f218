package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/boy52hz/OASIP-US-3-V2/internal/booking"
	"github.com/boy52hz/OASIP-US-3-V2/internal/config"
	"github.com/boy52hz/OASIP-US-3-V2/internal/handler"
	"github.com/boy52hz/OASIP-US-3-V2/internal/middleware"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth       *handler.AuthHandler
	Events     *handler.EventHandler
	Categories *handler.CategoryHandler
}

// Register wires the full route table onto e.
//
// Event reads require a session; event mutations admit guests but never
// lecturers. The allocated-slots and file endpoints are public, matching
// the category list.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	auth := e.Group("/api/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/match", h.Auth.Match)
	// Logout works with either a refresh token in the body or a bearer
	// token, so auth here is optional.
	auth.POST("/logout", h.Auth.Logout, middleware.OptionalJWTAuth(cfg.JWTSecret))

	e.GET("/api/me", h.Auth.Me, middleware.JWTAuth(cfg.JWTSecret))

	events := e.Group("/api/events")
	events.GET("", h.Events.List, middleware.JWTAuth(cfg.JWTSecret))
	events.GET("/allocatedTimeSlots", h.Events.AllocatedTimeSlots)
	events.GET("/files/:uuid", h.Events.GetFile)
	events.GET("/:id", h.Events.GetByID, middleware.JWTAuth(cfg.JWTSecret))

	mutate := []echo.MiddlewareFunc{
		middleware.OptionalJWTAuth(cfg.JWTSecret),
		middleware.ForbidRole(booking.RoleLecturer),
	}
	events.POST("", h.Events.Create, mutate...)
	events.PATCH("/:id", h.Events.Update, mutate...)
	events.DELETE("/:id", h.Events.Delete, mutate...)

	categories := e.Group("/api/categories")
	categories.GET("", h.Categories.List)
	categories.GET("/lecturer", h.Categories.ListOwned,
		middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(booking.RoleLecturer))
	categories.PATCH("/:id", h.Categories.Update,
		middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(booking.RoleAdmin))
}
