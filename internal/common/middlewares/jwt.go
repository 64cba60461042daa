package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-frontdesk/internal/common/response"
	"github.com/c14220110/poliklinik-frontdesk/pkg/utils"
)

type contextKey string

const (
	ContextKeyClaims contextKey = "claims"
	// SessionCookie carries the token for the HTML board, which cannot set
	// an Authorization header on form posts.
	SessionCookie = "desk_session"
)

// JWTMiddleware accepts a Bearer token or the session cookie and stores the
// claims in the echo context.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr, msg := extractToken(c)
			if tokenStr == "" {
				return unauthorized(c, msg)
			}

			claims, err := utils.ValidateJWTToken(secret, tokenStr)
			if err != nil {
				return unauthorized(c, "Invalid token: "+err.Error())
			}

			c.Set(string(ContextKeyClaims), claims)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, string) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", "Invalid authorization header"
		}
		return parts[1], ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, ""
	}
	return "", "Authorization header missing"
}

func unauthorized(c echo.Context, message string) error {
	if !IsAPIRequest(c) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return response.JSON(c, http.StatusUnauthorized, message, nil)
}

// IsAPIRequest tells JSON clients apart from the HTML board.
func IsAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// ClaimsFrom returns the claims set by JWTMiddleware, or nil when auth is
// off.
func ClaimsFrom(c echo.Context) *utils.Claims {
	claims, _ := c.Get(string(ContextKeyClaims)).(*utils.Claims)
	return claims
}
