// File: internal/service/user.go
package service

import (
	"context"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"
	"inventory-hub/internal/store"
)

var (
	createUser = store.CreateUser
	updateUser = store.UpdateUser
)

// RegisterUser 供 signup 與管理員新增共用：雜湊密碼後寫入
func RegisterUser(ctx context.Context, db database.DB, username, password string) (*model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, apperr.Service("RegisterUser", err)
	}
	return createUser(ctx, db, &model.User{Username: username, PasswordHash: hash})
}

// ReplaceCredentials 同時覆寫帳號與密碼，不支援部分更新
func ReplaceCredentials(ctx context.Context, db database.DB, id int, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return apperr.Service("ReplaceCredentials", err)
	}
	return updateUser(ctx, db, &model.User{ID: id, Username: username, PasswordHash: hash})
}
