package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inventory-hub/internal/cache"
	"inventory-hub/internal/database"
	"inventory-hub/internal/events"
	"inventory-hub/internal/model"
	"inventory-hub/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	live map[string]bool
}

func (f *fakeSessions) Issue(context.Context, model.User) (string, time.Time, error) {
	return "tok", time.Now(), nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	if !f.live[token] {
		return service.ErrNoSession
	}
	delete(f.live, token)
	return nil
}

func (f *fakeSessions) Validate(_ context.Context, token string) (*service.CustomClaims, error) {
	if !f.live[token] {
		return nil, service.ErrNoSession
	}
	return &service.CustomClaims{UserID: 1, Username: "amy"}, nil
}

func newDeps(requireAuth bool) (Deps, *fakeSessions) {
	s := &fakeSessions{live: map[string]bool{"good": true}}
	db := &database.FakeDB{
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("db offline")
		},
	}
	return Deps{
		DB:          db,
		Cache:       &cache.FakeCache{},
		Sessions:    s,
		Publisher:   events.NopPublisher{},
		RequireAuth: requireAuth,
	}, s
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	d, _ := newDeps(true)
	Setup(e, d)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/login",
		http.MethodPost + " /api/signup",
		http.MethodPost + " /api/logout",
		http.MethodGet + " /api/product",
		http.MethodPost + " /api/product",
		http.MethodDelete + " /api/product/:name",
		http.MethodPut + " /api/products/:name/quantity",
		http.MethodGet + " /api/users",
		http.MethodPost + " /api/users",
		http.MethodPut + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
	}

	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutes(t *testing.T) {
	serve := func(requireAuth bool, method, path, auth string) int {
		e := echo.New()
		d, _ := newDeps(requireAuth)
		Setup(e, d)
		req := httptest.NewRequest(method, path, nil)
		if auth != "" {
			req.Header.Set(echo.HeaderAuthorization, auth)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	for _, path := range []string{"/api/product", "/api/users"} {
		t.Run(path, func(t *testing.T) {
			require.Equal(t, http.StatusUnauthorized, serve(true, http.MethodGet, path, ""))
			require.Equal(t, http.StatusUnauthorized, serve(true, http.MethodGet, path, "Bearer revoked"))
			// 通過驗證後由 handler 回報資料庫錯誤
			require.Equal(t, http.StatusInternalServerError, serve(true, http.MethodGet, path, "Bearer good"))
			require.Equal(t, http.StatusInternalServerError, serve(false, http.MethodGet, path, ""))
		})
	}

	t.Run("delete product guarded", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, serve(true, http.MethodDelete, "/api/product/Rice", ""))
	})

	t.Run("logout is public", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, serve(true, http.MethodPost, "/api/logout", ""))
	})
}
