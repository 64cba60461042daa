package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/request"
	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
)

const noDesksMessage = "No desks registered."

type ReceptionController struct {
	Desk *services.Desk
}

func NewReceptionController(desk *services.Desk) *ReceptionController {
	return &ReceptionController{Desk: desk}
}

func (rc *ReceptionController) RegisterReceptionist(c echo.Context) error {
	var req request.Name
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}

	number, ok := rc.Desk.RegisterReceptionist(c.Request().Context(), req.Name)
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return response.JSON(c, http.StatusCreated, "Receptionist registered successfully", echo.Map{
		"desk": number,
		"name": strings.TrimSpace(req.Name),
	})
}

func (rc *ReceptionController) RegisterPatient(c echo.Context) error {
	var req request.Patient
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}

	// A blank name is dropped silently whatever the type says.
	if strings.TrimSpace(req.Name) == "" {
		return c.NoContent(http.StatusNoContent)
	}

	patientType, err := models.ParsePatientType(req.Type)
	if err != nil {
		return response.JSON(c, http.StatusBadRequest, err.Error(), nil)
	}

	patient, err := rc.Desk.RegisterPatient(c.Request().Context(), req.Name, patientType)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPatientType) {
			return response.JSON(c, http.StatusBadRequest, err.Error(), nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "Failed to register patient: "+err.Error(), nil)
	}
	if patient == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return response.JSON(c, http.StatusCreated, "Patient registered successfully", patient)
}

// GetQueues returns the desk queues, each already in attend order.
func (rc *ReceptionController) GetQueues(c echo.Context) error {
	board := rc.Desk.Board()
	message := "Desk queues retrieved successfully"
	if !board.HasDesks() {
		message = noDesksMessage
	}

	return response.JSON(c, http.StatusOK, message, echo.Map{
		"receptionists": board.Receptionists,
		"queues":        board.DeskQueues,
		"waiting":       board.Waiting,
	})
}

func (rc *ReceptionController) AttendNext(c echo.Context) error {
	index, err := request.QueueIndex(c)
	if err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid desk index: "+err.Error(), nil)
	}

	att, err := rc.Desk.AttendAtDesk(c.Request().Context(), index)
	if err != nil {
		return response.AttendError(c, err, noDesksMessage)
	}

	return response.JSON(c, http.StatusOK, att.Notice(), att)
}
