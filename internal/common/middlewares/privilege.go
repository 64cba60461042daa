package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
)

// RequireRole checks the role claim set by JWTMiddleware. It must run after
// JWTMiddleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return response.JSON(c, http.StatusUnauthorized, "Missing or invalid JWT claims", nil)
			}
			if claims.Role != role {
				return response.JSON(c, http.StatusForbidden, "You are not allowed to do this", nil)
			}
			return next(c)
		}
	}
}
