package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/request"
	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
	"github.com/c14220110/poliklinik-frontdesk/internal/management/services"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

func (ac *AuthController) Login(c echo.Context) error {
	var req request.Credentials
	if err := c.Bind(&req); err != nil {
		return response.JSON(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if req.Username == "" || req.Password == "" {
		return response.JSON(c, http.StatusBadRequest, "Username and password are required", nil)
	}

	token, exp, err := ac.Service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.JSON(c, http.StatusUnauthorized, "Invalid username or password", nil)
		}
		return response.JSON(c, http.StatusInternalServerError, "Failed to generate token: "+err.Error(), nil)
	}

	return response.JSON(c, http.StatusOK, "Login successful", echo.Map{
		"username":   req.Username,
		"token":      token,
		"expires_at": exp,
	})
}
