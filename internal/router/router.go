package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/medinova/health-claims-api/internal/handler"    // import the handlers that implement business logic
	"github.com/medinova/health-claims-api/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/health" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/health", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  None of these
// endpoints require an existing session; they are the ones that create or
// exchange tokens.  The optional rate limiter is applied to the whole group
// so that password and OTP guessing are throttled per client IP.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	// Password login returning an access/refresh token pair.
	g.POST("/login", a.Login)
	// OTP flow: request a code, resend it, then validate it for a token pair.
	g.POST("/verify/request", a.RequestOTP)
	g.POST("/verify/resend", a.ResendOTP)
	g.POST("/verify/validate", a.ValidateOTP)
	// Exchange a refresh token for a new access token.  The refresh token is
	// not rotated; the same one stays valid until it expires.
	g.POST("/refresh", a.Refresh)
}

// RegisterClaims registers the claim submission and lookup endpoints.  All of
// them require a valid access token: claims carry member and financial data
// that must never be exposed to anonymous callers.
func RegisterClaims(e *echo.Echo, h *handler.ClaimsHandler, jwtSecret string) {
	g := e.Group("/v1/claims")
	g.Use(middleware.JWTAuth(jwtSecret))
	// Submit a claim for synchronous adjudication.
	g.POST("", h.Submit)
	// Look up a single processed claim by its id.
	g.GET("/:id", h.Get)
	// List claims with optional member/provider/status filters and pagination.
	g.GET("", h.List)
}

// RegisterUsers registers account management routes.  Registration is public;
// everything else is an administrative operation and sits behind JWT
// authentication plus an ADMIN role check.
func RegisterUsers(e *echo.Echo, h *handler.UsersHandler, users *repository.UserRepo, jwtSecret string) {
	// Self-service registration creates an INACTIVE account and sends the
	// initial verification OTP.  Registered directly on the Echo instance so
	// the group's auth middleware does not apply to it.
	e.POST("/v1/users", h.Register)

	g := e.Group("/v1/users")
	g.Use(middleware.JWTAuth(jwtSecret))
	// The role is not embedded in the token, so RequireRole resolves the
	// caller from the database on every request.
	g.Use(middleware.RequireRole(users, model.RoleAdmin))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
