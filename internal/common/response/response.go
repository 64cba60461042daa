package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
)

// JSON writes the {status, message, data} envelope used by every API route.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// AttendError maps the outcome of an attend action. An empty queue is a
// notice, so it is answered with 200 and no data.
func AttendError(c echo.Context, err error, noQueuesMessage string) error {
	switch {
	case errors.Is(err, models.ErrEmptyQueue):
		return JSON(c, http.StatusOK, err.Error(), nil)
	case errors.Is(err, models.ErrNoQueues):
		return JSON(c, http.StatusConflict, noQueuesMessage, nil)
	case errors.Is(err, models.ErrUnknownQueue):
		return JSON(c, http.StatusNotFound, err.Error(), nil)
	default:
		return JSON(c, http.StatusInternalServerError, "Failed to attend patient: "+err.Error(), nil)
	}
}
