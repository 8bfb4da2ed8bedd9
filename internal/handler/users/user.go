package users

import (
	"net/http"
	"strconv"

	"inventory-hub/internal/api"
	"inventory-hub/internal/database"
	"inventory-hub/internal/handler"
	"inventory-hub/internal/service"
	"inventory-hub/internal/store"

	"github.com/labstack/echo/v4"
)

const credentialsRequired = "Username and password are required."

var (
	listUsers          = store.ListUsers
	registerUser       = service.RegisterUser
	replaceCredentials = service.ReplaceCredentials
	deleteUser         = store.DeleteUser
)

// @Summary     List users
// @Description 回傳所有使用者的 id 與 username，不含任何密碼資料
// @Tags        users
// @Produce     json
// @Success     200 {array}  model.UserSummary
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.Fail(c, "ListUsers", err)
		}
		return c.JSON(http.StatusOK, users)
	}
}

// @Summary     Add a user
// @Description 管理員新增使用者，密碼以 bcrypt 雜湊儲存
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CredentialsRequest true "帳號與密碼"
// @Success     201  {object} api.CreateUserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CredentialsRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "CreateUser", credentialsRequired, "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "CreateUser", credentialsRequired)
		}

		user, err := registerUser(c.Request().Context(), db, req.Username, req.Password)
		if err != nil {
			return handler.Fail(c, "CreateUser", err, "username", req.Username)
		}
		return c.JSON(http.StatusCreated, api.CreateUserResponse{Message: "User added successfully", UserID: user.ID})
	}
}

// @Summary     Update a user
// @Description 以 id 覆寫 username 與 password，兩者皆必填
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "使用者 ID"
// @Param       body body     api.CredentialsRequest true "新的帳號與密碼"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return handler.BadRequest(c, "UpdateUser", "Invalid user id", "id", c.Param("id"))
		}
		var req api.CredentialsRequest
		if err := c.Bind(&req); err != nil {
			return handler.BadRequest(c, "UpdateUser", credentialsRequired, "id", id, "bind_error", err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.BadRequest(c, "UpdateUser", credentialsRequired, "id", id)
		}

		if err := replaceCredentials(c.Request().Context(), db, id, req.Username, req.Password); err != nil {
			return handler.Fail(c, "UpdateUser", err, "id", id)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User updated successfully"})
	}
}

// @Summary     Delete a user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return handler.BadRequest(c, "DeleteUser", "Invalid user id", "id", c.Param("id"))
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return handler.Fail(c, "DeleteUser", err, "id", id)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
	}
}
