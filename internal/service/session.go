// File: internal/service/session.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inventory-hub/internal/cache"
	"inventory-hub/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession 表示 token 無效、已過期或已登出
var ErrNoSession = errors.New("no active session")

var newSessionID = uuid.NewString

func sessionKey(jti string) string { return "session:" + jti }

// Sessions 管理登入 session：JWT 負責簽章，Redis key 負責存活與撤銷
type Sessions struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
}

func NewSessions(c cache.Cache, secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{cache: c, secret: []byte(secret), ttl: ttl}
}

// Issue 簽發 token 並寫入 session:<jti>，TTL 與 token 到期時間一致
func (s *Sessions) Issue(ctx context.Context, user model.User) (string, time.Time, error) {
	jti := newSessionID()
	token, expiresAt, err := IssueAccessToken(user, s.secret, jti, s.ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(jti), strconv.Itoa(user.ID), s.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("Issue: %w", err)
	}
	return token, expiresAt, nil
}

// Validate 回傳 ErrNoSession 或 cache 錯誤
func (s *Sessions) Validate(ctx context.Context, token string) (*CustomClaims, error) {
	claims, err := VerifyAccessToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if err := s.cache.Get(ctx, sessionKey(claims.ID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("Validate: %w", err)
	}
	return claims, nil
}

// Revoke 刪除 session key；key 不存在時回傳 ErrNoSession
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	claims, err := VerifyAccessToken(token, s.secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	n, err := s.cache.Del(ctx, sessionKey(claims.ID)).Result()
	if err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	if n == 0 {
		return ErrNoSession
	}
	return nil
}
