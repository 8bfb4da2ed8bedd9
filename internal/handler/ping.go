// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"inventory-hub/internal/api"
	"inventory-hub/internal/cache"
	"inventory-hub/internal/database"
	"inventory-hub/internal/logging"

	"github.com/labstack/echo/v4"
)

const healthKey = "health:ping"

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查 PostgreSQL 與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			logging.FromContext(ctx).Error("database ping failed", "error", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, healthKey, time.Now().Unix(), time.Minute).Err(); err != nil {
			logging.FromContext(ctx).Error("cache ping failed", "error", err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "pong"})
	}
}
