// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"spacemissions/internal/handler"
	"spacemissions/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Unauthenticated operations
// live under /v1/auth; the protected /v1/me endpoint verifies access tokens
// signed with jwtSecret.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked and
	// a fresh pair issued.
	g.POST("/refresh", a.Refresh)
	// Logout takes a refresh_token in the body and invalidates that session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Revokes every session of the authenticated user, not just one.
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterCatalog registers the mission and rocket endpoints. Reads are
// public; the mission list additionally goes through the response cache and
// rate limiter since it carries the heavy filter/sort/paginate queries.
// Writes require a valid access token.
func RegisterCatalog(e *echo.Echo, m *handler.MissionHandler, r *handler.RocketHandler, jwtSecret string, cache, limit echo.MiddlewareFunc) {
	e.GET("/v1/missions", m.List, limit, cache)
	e.GET("/v1/missions/:id", m.GetByID)
	e.GET("/v1/missions/:id/rocket", m.GetRocket)
	e.GET("/v1/rockets", r.List)
	e.GET("/v1/rockets/:id", r.GetByID)
	e.GET("/v1/rockets/:id/missions", r.ListMissions)

	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/missions", m.Create)
	g.PUT("/missions/:id", m.Update)
	g.DELETE("/missions/:id", m.Delete)
	g.POST("/rockets", r.Create)
	g.PUT("/rockets/:id", r.Update)
	g.DELETE("/rockets/:id", r.Delete)
}

// RegisterImport registers the authenticated bulk import endpoint.
func RegisterImport(e *echo.Echo, h *handler.ImportHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	g.POST("/import", h.Run)
}
