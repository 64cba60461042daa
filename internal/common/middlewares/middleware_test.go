package middlewares

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-frontdesk/pkg/utils"
)

var secret = []byte("middleware-secret")

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func validToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(secret, "recepcao", role, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func run(e *echo.Echo, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func TestJWTMiddleware_BearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/management/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+validToken(t, utils.RoleFrontDesk))

	var seen *utils.Claims
	h := JWTMiddleware(secret)(func(c echo.Context) error {
		seen = ClaimsFrom(c)
		return okHandler(c)
	})

	rec, err := run(e, req, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.Username != "recepcao" {
		t.Errorf("expected claims in context, got %+v", seen)
	}
}

func TestJWTMiddleware_Cookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/patients", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: validToken(t, utils.RoleFrontDesk)})

	rec, err := run(e, req, JWTMiddleware(secret)(okHandler))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing", "", http.StatusUnauthorized, "Authorization header missing"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization header"},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/reception/queues", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}

			rec, err := run(e, req, JWTMiddleware(secret)(okHandler))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var body map[string]interface{}
			json.Unmarshal(rec.Body.Bytes(), &body)
			if msg, _ := body["message"].(string); !strings.HasPrefix(msg, tt.wantMsg) {
				t.Errorf("expected message %q, got %q", tt.wantMsg, msg)
			}
		})
	}
}

func TestJWTMiddleware_HTMLRedirectsToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/receptionists", nil)

	rec, err := run(e, req, JWTMiddleware(secret)(okHandler))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"matching role", utils.RoleFrontDesk, http.StatusOK},
		{"other role", "visitor", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/management/stats", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+validToken(t, tt.role))

			h := JWTMiddleware(secret)(RequireRole(utils.RoleFrontDesk)(okHandler))
			rec, err := run(e, req, h)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/management/stats", nil)

	rec, _ := run(e, req, RequireRole(utils.RoleFrontDesk)(okHandler))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/management/stats", nil)

	rec, err := run(e, req, Logger(zerolog.New(&buf))(okHandler))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q", buf.String())
	}
	if entry["path"] != "/api/management/stats" || entry["status"] != float64(200) {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestLogger_HandlerError(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)

	rec, err := run(e, req, Logger(zerolog.New(&buf))(func(c echo.Context) error {
		return errors.New("boom")
	}))
	if err != nil {
		t.Fatalf("error should be handled by the logger, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected an error level entry, got %q", buf.String())
	}
}
