package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/reception/controllers"
)

// RegisterReceptionRoutes mounts the reception API. guard protects the
// mutating endpoints.
func RegisterReceptionRoutes(api *echo.Group, rc *controllers.ReceptionController, guard echo.MiddlewareFunc) {
	reception := api.Group("/reception")
	reception.GET("/queues", rc.GetQueues)
	reception.POST("/receptionists", rc.RegisterReceptionist, guard)
	reception.POST("/patients", rc.RegisterPatient, guard)
	reception.POST("/desks/:index/attend", rc.AttendNext, guard)
}
