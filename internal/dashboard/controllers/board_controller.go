package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/middlewares"
	"github.com/c14220110/poliklinik-frontdesk/internal/common/request"
	"github.com/c14220110/poliklinik-frontdesk/internal/dashboard/views"
	"github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/models"
	deskServices "github.com/c14220110/poliklinik-frontdesk/internal/frontdesk/services"
	"github.com/c14220110/poliklinik-frontdesk/internal/management/services"
)

// BoardController serves the HTML board. Form posts redirect back to the
// board with the outcome in the notice query parameter.
type BoardController struct {
	Desk *deskServices.Desk
	// Auth is nil when login is disabled.
	Auth         *services.AuthService
	SecureCookie bool
}

func NewBoardController(desk *deskServices.Desk, auth *services.AuthService, secureCookie bool) *BoardController {
	return &BoardController{Desk: desk, Auth: auth, SecureCookie: secureCookie}
}

func (bc *BoardController) Index(c echo.Context) error {
	page := views.Page{
		Board:        bc.Desk.Board(),
		PatientTypes: models.PatientTypes,
		Notice:       c.QueryParam("notice"),
		AuthEnabled:  bc.Auth != nil,
	}
	if claims := middlewares.ClaimsFrom(c); claims != nil {
		page.Username = claims.Username
	}
	return c.Render(http.StatusOK, "board.html", page)
}

func (bc *BoardController) DesksFragment(c echo.Context) error {
	return c.Render(http.StatusOK, "desks", bc.Desk.Board())
}

func (bc *BoardController) DoctorsFragment(c echo.Context) error {
	return c.Render(http.StatusOK, "doctors", bc.Desk.Board())
}

func (bc *BoardController) StatsFragment(c echo.Context) error {
	return c.Render(http.StatusOK, "stats", bc.Desk.Stats())
}

func (bc *BoardController) RegisterReceptionist(c echo.Context) error {
	var req request.Name
	if err := c.Bind(&req); err != nil {
		return redirectWithNotice(c, "Invalid form: "+err.Error())
	}
	bc.Desk.RegisterReceptionist(c.Request().Context(), req.Name)
	return redirectWithNotice(c, "")
}

func (bc *BoardController) RegisterDoctor(c echo.Context) error {
	var req request.Name
	if err := c.Bind(&req); err != nil {
		return redirectWithNotice(c, "Invalid form: "+err.Error())
	}
	bc.Desk.RegisterDoctor(c.Request().Context(), req.Name)
	return redirectWithNotice(c, "")
}

func (bc *BoardController) RegisterPatient(c echo.Context) error {
	var req request.Patient
	if err := c.Bind(&req); err != nil {
		return redirectWithNotice(c, "Invalid form: "+err.Error())
	}

	if strings.TrimSpace(req.Name) == "" {
		return redirectWithNotice(c, "")
	}

	patientType, err := models.ParsePatientType(req.Type)
	if err != nil {
		return redirectWithNotice(c, err.Error())
	}
	if _, err := bc.Desk.RegisterPatient(c.Request().Context(), req.Name, patientType); err != nil {
		return redirectWithNotice(c, err.Error())
	}
	return redirectWithNotice(c, "")
}

func (bc *BoardController) AttendDesk(c echo.Context) error {
	index, err := request.QueueIndex(c)
	if err != nil {
		return redirectWithNotice(c, "Invalid desk index.")
	}

	att, err := bc.Desk.AttendAtDesk(c.Request().Context(), index)
	if err != nil {
		return redirectWithNotice(c, attendNotice(err, "No desks registered."))
	}
	return redirectWithNotice(c, att.Notice())
}

func (bc *BoardController) AttendDoctor(c echo.Context) error {
	index, err := request.QueueIndex(c)
	if err != nil {
		return redirectWithNotice(c, "Invalid doctor index.")
	}

	att, err := bc.Desk.AttendAtDoctor(c.Request().Context(), index)
	if err != nil {
		return redirectWithNotice(c, attendNotice(err, "No doctors registered."))
	}
	return redirectWithNotice(c, att.Notice())
}

func (bc *BoardController) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", views.LoginPage{})
}

func (bc *BoardController) Login(c echo.Context) error {
	var req request.Credentials
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "login.html", views.LoginPage{Error: "Invalid form."})
	}

	token, exp, err := bc.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Render(http.StatusUnauthorized, "login.html", views.LoginPage{Error: "Invalid username or password."})
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   bc.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/")
}

func (bc *BoardController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   bc.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

func attendNotice(err error, noQueues string) string {
	if errors.Is(err, models.ErrNoQueues) {
		return noQueues
	}
	return err.Error()
}

func redirectWithNotice(c echo.Context, notice string) error {
	target := "/"
	if notice != "" {
		target += "?notice=" + url.QueryEscape(notice)
	}
	return c.Redirect(http.StatusSeeOther, target)
}
