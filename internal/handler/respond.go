package handler

import (
	"net/http"

	"inventory-hub/internal/api"
	"inventory-hub/internal/apperr"
	"inventory-hub/internal/logging"

	"github.com/labstack/echo/v4"
)

// Fail 依錯誤分類決定狀態碼並寫 log，回應內容只包含可公開的訊息
func Fail(c echo.Context, op string, err error, attrs ...any) error {
	status := apperr.Status(err)
	logger := logging.FromContext(c.Request().Context())
	args := append([]any{"op", op, "status", status, "error", err}, attrs...)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", args...)
	} else {
		logger.Warn("request rejected", args...)
	}
	return c.JSON(status, api.ErrorResponse{Message: apperr.Message(err)})
}

// BadRequest 是 Fail 搭配 apperr.Validation 的簡寫
func BadRequest(c echo.Context, op, msg string, attrs ...any) error {
	return Fail(c, op, apperr.Validation(op, msg), attrs...)
}
