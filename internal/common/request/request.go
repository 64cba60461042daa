package request

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

var ErrInvalidIndex = errors.New("index must be a non-negative integer")

// Name is the body of the receptionist and doctor registration forms.
type Name struct {
	Name string `json:"name" form:"name"`
}

// Patient is the body of the patient registration form.
type Patient struct {
	Name string `json:"name" form:"name"`
	Type string `json:"type" form:"type"`
}

// QueueIndex reads the 0-based :index path parameter. Range checks are left
// to the desk, which knows how many queues exist.
func QueueIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, ErrInvalidIndex
	}
	return index, nil
}

// Credentials is the body of the login form.
type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
