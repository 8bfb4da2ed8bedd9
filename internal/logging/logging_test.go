package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()
	NewWithWriter(&buf, "debug").Debug("dbg")
	require.Contains(t, buf.String(), "dbg")

	buf.Reset()
	NewWithWriter(&buf, "error").Warn("nope")
	require.Empty(t, buf.String())
}

func TestContextRoundTrip(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := IntoContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &m))
	return m
}

func TestRequestLogger(t *testing.T) {
	e := echo.New()

	t.Run("ok", func(t *testing.T) {
		var buf bytes.Buffer
		mw := RequestLogger(NewWithWriter(&buf, "info"))
		req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
		req.Header.Set(echo.HeaderXRequestID, "rid-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/product")

		var inner *slog.Logger
		err := mw(func(c echo.Context) error {
			inner = FromContext(c.Request().Context())
			return c.String(http.StatusOK, "ok")
		})(c)
		require.NoError(t, err)
		require.NotEqual(t, slog.Default(), inner)

		m := lastLine(t, &buf)
		require.Equal(t, "INFO", m["level"])
		require.EqualValues(t, 200, m["status"])
		require.Equal(t, "rid-1", m["request_id"])
		require.Equal(t, "/api/product", m["path"])
	})

	t.Run("client error", func(t *testing.T) {
		var buf bytes.Buffer
		mw := RequestLogger(NewWithWriter(&buf, "info"))
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		require.NoError(t, mw(func(c echo.Context) error {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "no"})
		})(c))
		require.Equal(t, "WARN", lastLine(t, &buf)["level"])
	})

	t.Run("client http error is a warning", func(t *testing.T) {
		var buf bytes.Buffer
		mw := RequestLogger(NewWithWriter(&buf, "info"))
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		require.NoError(t, mw(func(echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		})(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		m := lastLine(t, &buf)
		require.Equal(t, "WARN", m["level"])
		require.EqualValues(t, http.StatusUnauthorized, m["status"])
		require.Contains(t, m["error"], "missing token")
	})

	t.Run("unexpected handler error is an error", func(t *testing.T) {
		var buf bytes.Buffer
		mw := RequestLogger(NewWithWriter(&buf, "info"))
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		require.NoError(t, mw(func(echo.Context) error {
			return errors.New("boom")
		})(c))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		m := lastLine(t, &buf)
		require.Equal(t, "ERROR", m["level"])
		require.Contains(t, m["error"], "boom")
	})
}
