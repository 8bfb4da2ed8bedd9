// File: internal/service/authentication.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inventory-hub/internal/apperr"
	"inventory-hub/internal/database"
	"inventory-hub/internal/model"
	"inventory-hub/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

// InvalidCredentials 帳號不存在與密碼錯誤共用同一訊息
const InvalidCredentials = "Invalid username or password."

var (
	getUserByUsername = store.GetUserByUsername
	timeNow           = time.Now
	parseWithClaims   = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容，ID (jti) 對應 Redis 中的 session key
type CustomClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthenticateUser 依帳號查詢使用者並以 bcrypt 比對密碼
func AuthenticateUser(ctx context.Context, db database.DB, username, password string) (*model.User, error) {
	const op = "AuthenticateUser"
	user, err := getUserByUsername(ctx, db, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			burnCompare(password)
			return nil, apperr.Auth(op, InvalidCredentials)
		}
		return nil, apperr.Service(op, err)
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperr.Auth(op, InvalidCredentials)
	}
	return user, nil
}

// IssueAccessToken 依據使用者資訊、jti 與 TTL 產生 HS256 JWT
func IssueAccessToken(user model.User, secret []byte, jti string, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT_SECRET not set")
	}

	now := timeNow()
	expiresAt := now.Add(ttl)
	claims := CustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(tokenString string, secret []byte) (*CustomClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
