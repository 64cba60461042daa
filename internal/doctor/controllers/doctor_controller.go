package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/request"
	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
)

const noDoctorsMessage = "No doctors registered."

type DoctorController struct {
	Desk *services.Desk
}

func NewDoctorController(desk *services.Desk) *DoctorController {
	return &DoctorController{Desk: desk}
}

func (dc *DoctorController) RegisterDoctor(c echo.Context) error {
	var req request.Name
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}

	number, ok := dc.Desk.RegisterDoctor(c.Request().Context(), req.Name)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return response.JSON(c, http.StatusCreated, "Doctor registered successfully", echo.Map{
		"doctor": number,
		"name":   strings.TrimSpace(req.Name),
	})
}

// GetQueues returns the doctor queues. Patients keep the order in which they
// passed reception.
func (dc *DoctorController) GetQueues(c echo.Context) error {
	board := dc.Desk.Board()
	message := "Doctor queues retrieved successfully"
	if !board.HasDoctors() {
		message = noDoctorsMessage
	}

	return response.JSON(c, http.StatusOK, message, echo.Map{
		"doctors": board.Doctors,
		"queues":  board.DoctorQueues,
		"passed":  board.Passed,
	})
}

func (dc *DoctorController) AttendNext(c echo.Context) error {
	index, err := request.QueueIndex(c)
	if err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid doctor index: "+err.Error(), nil)
	}

	att, err := dc.Desk.AttendAtDoctor(c.Request().Context(), index)
	if err != nil {
		return response.AttendError(c, err, noDoctorsMessage)
	}

	return response.JSON(c, http.StatusOK, att.Notice(), att)
}
