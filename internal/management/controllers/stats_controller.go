package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
)

type StatsController struct {
	Desk *services.Desk
}

func NewStatsController(desk *services.Desk) *StatsController {
	return &StatsController{Desk: desk}
}

// GetStats returns the session counters: patients registered, and patients
// served per receptionist and per doctor in registration order.
func (sc *StatsController) GetStats(c echo.Context) error {
	return response.JSON(c, http.StatusOK, "Statistics retrieved successfully", sc.Desk.Stats())
}
