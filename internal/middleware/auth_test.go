package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil)
	if header != "" {
		req.Header.Set(UserIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured uuid.UUID
	handler := NewGatewayAuthMiddleware().Authenticate()(func(c echo.Context) error {
		captured = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, captured
}

func TestGatewayAuth_ValidHeader(t *testing.T) {
	userID := uuid.New()
	rec, captured := runAuth(t, userID.String())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, captured)
}

func TestGatewayAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGatewayAuth_MalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, "not-a-uuid")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, uuid.Nil, GetUserID(c))
}
