package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/dashboard/controllers"
)

func RegisterDashboardRoutes(e *echo.Echo, bc *controllers.BoardController, guard echo.MiddlewareFunc) {
	if bc.Auth != nil {
		e.GET("/login", bc.LoginPage)
		e.POST("/login", bc.Login)
		e.POST("/logout", bc.Logout)
	}

	e.GET("/", bc.Index, guard)
	e.GET("/fragments/desks", bc.DesksFragment, guard)
	e.GET("/fragments/doctors", bc.DoctorsFragment, guard)
	e.GET("/fragments/stats", bc.StatsFragment, guard)

	e.POST("/receptionists", bc.RegisterReceptionist, guard)
	e.POST("/doctors", bc.RegisterDoctor, guard)
	e.POST("/patients", bc.RegisterPatient, guard)
	e.POST("/desks/:index/attend", bc.AttendDesk, guard)
	e.POST("/doctors/:index/attend", bc.AttendDoctor, guard)
}
