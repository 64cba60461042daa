package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/doctor/controllers"
)

func RegisterDoctorRoutes(api *echo.Group, dc *controllers.DoctorController, guard echo.MiddlewareFunc) {
	doctor := api.Group("/doctor")
	doctor.GET("/queues", dc.GetQueues)
	doctor.POST("/doctors", dc.RegisterDoctor, guard)
	doctor.POST("/doctors/:index/attend", dc.AttendNext, guard)
}
