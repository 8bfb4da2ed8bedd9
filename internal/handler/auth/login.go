// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"inventory-hub/internal/api"
	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/handler"
	"inventory-hub/internal/model"
	"inventory-hub/internal/service"

	"github.com/labstack/echo/v4"
)

const credentialsRequired = "Username and password are required."

var (
	authenticateUser = service.AuthenticateUser
	registerUser     = service.RegisterUser
)

// SessionManager 由 *service.Sessions 實作
type SessionManager interface {
	Issue(ctx context.Context, user model.User) (string, time.Time, error)
	Revoke(ctx context.Context, token string) error
}

// LoginHandler 使用 Username/Password 驗證並建立 session
// @Summary     登入使用者
// @Description 帳號不存在或密碼錯誤回傳相同訊息；成功回傳 sessionToken 與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.CredentialsRequest true "帳號與密碼"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, sessions SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CredentialsRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "Login", credentialsRequired, "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Login", credentialsRequired)
		}

		ctx := c.Request().Context()
		user, err := authenticateUser(ctx, db, req.Username, req.Password)
		if err != nil {
			return handler.Fail(c, "Login", err, "username", req.Username)
		}

		token, expiresAt, err := sessions.Issue(ctx, *user)
		if err != nil {
			return handler.Fail(c, "Login", apperr.Service("Login", err), "username", req.Username)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Message:      "Login successful",
			User:         user.Summary(),
			SessionToken: token,
			ExpiresAt:    expiresAt,
		})
	}
}

// SignupHandler 註冊新帳號
// @Summary     註冊
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.CredentialsRequest true "帳號與密碼"
// @Success     201  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /signup [post]
func SignupHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CredentialsRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "Signup", credentialsRequired, "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Signup", credentialsRequired)
		}

		if _, err := registerUser(c.Request().Context(), db, req.Username, req.Password); err != nil {
			return handler.Fail(c, "Signup", err, "username", req.Username)
		}
		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "Sign-up successful"})
	}
}

// LogoutHandler 撤銷 session
// @Summary     登出
// @Description token 無效或 session 已不存在時回傳 400
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LogoutRequest true "sessionToken"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /logout [post]
func LogoutHandler(sessions SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LogoutRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "Logout", "sessionToken is required", "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "Logout", "sessionToken is required")
		}

		if err := sessions.Revoke(c.Request().Context(), req.SessionToken); err != nil {
			if errors.Is(err, service.ErrNoSession) {
				return handler.BadRequest(c, "Logout", "No active session found", "reason", err)
			}
			return handler.Fail(c, "Logout", apperr.Service("Logout", err))
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logout successful"})
	}
}
