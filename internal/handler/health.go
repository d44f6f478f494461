package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medinova/health-claims-api/internal/config"
)

// Health reports service liveness along with the application name and
// version, for load balancers and monitoring systems.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"app":     config.AppName,
		"version": config.AppVersion,
	})
}
