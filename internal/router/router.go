// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"inventory-hub/internal/cache"
	"inventory-hub/internal/database"
	"inventory-hub/internal/events"
	"inventory-hub/internal/handler"
	"inventory-hub/internal/handler/auth"
	"inventory-hub/internal/handler/products"
	"inventory-hub/internal/handler/users"
	"inventory-hub/internal/middleware"
)

// SessionStore 由 *service.Sessions 實作
type SessionStore interface {
	auth.SessionManager
	middleware.SessionValidator
}

type Deps struct {
	DB          database.DB
	Cache       cache.Cache
	Sessions    SessionStore
	Publisher   events.Publisher
	RequireAuth bool
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")

	// 公開路由
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))
	api.POST("/login", auth.LoginHandler(d.DB, d.Sessions))
	api.POST("/signup", auth.SignupHandler(d.DB))
	api.POST("/logout", auth.LogoutHandler(d.Sessions))

	var guard []echo.MiddlewareFunc
	if d.RequireAuth {
		guard = append(guard, middleware.RequireSession(d.Sessions))
	}

	// 商品
	api.GET("/product", products.ListProductsHandler(d.DB), guard...)
	api.POST("/product", products.CreateProductHandler(d.DB, d.Publisher), guard...)
	api.DELETE("/product/:name", products.DeleteProductHandler(d.DB, d.Publisher), guard...)
	api.PUT("/products/:name/quantity", products.AdjustQuantityHandler(d.DB, d.Publisher), guard...)

	// 使用者管理
	apiUsers := api.Group("/users", guard...)
	apiUsers.GET("", users.ListUsersHandler(d.DB))
	apiUsers.POST("", users.CreateUserHandler(d.DB))
	apiUsers.PUT("/:id", users.UpdateUserHandler(d.DB))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(d.DB))
}
