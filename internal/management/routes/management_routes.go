package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/management/controllers"
)

// RegisterManagementRoutes mounts the stats endpoint and, when auth is
// configured, the login endpoint.
func RegisterManagementRoutes(api *echo.Group, sc *controllers.StatsController, ac *controllers.AuthController) {
	api.GET("/management/stats", sc.GetStats)
	if ac != nil {
		api.POST("/login", ac.Login)
	}
}
