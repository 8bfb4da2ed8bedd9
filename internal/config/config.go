// Package config 從 .env 與環境變數載入服務設定
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	ResetSchema   bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	HTTPAddr      string
	WorkerCount   int
	KafkaBrokers  []string
	KafkaTopic    string
	LogLevel      string
	RequireAuth   bool
	SessionTTL    time.Duration
}

// 供測試替換
var loadDotenv = func() error { return godotenv.Load(".env") }

// Load 讀取 .env（若存在）後再讀環境變數；必填欄位缺少或格式錯誤時回傳錯誤
func Load() (*Config, error) {
	// .env 不存在時直接使用系統環境變數
	_ = loadDotenv()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		HTTPAddr:      EnvDefault("HTTP_ADDR", ":8080"),
		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    EnvDefault("KAFKA_TOPIC", "inventory_events"),
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = envInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.RequireAuth, err = envBool("REQUIRE_AUTH", true); err != nil {
		return nil, err
	}
	if cfg.ResetSchema, err = envBool("DB_RESET", false); err != nil {
		return nil, err
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("無效的 SESSION_TTL: %q", v)
		}
		cfg.SessionTTL = d
	} else {
		cfg.SessionTTL = 24 * time.Hour
	}
	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("無效的 %s: %v", key, err)
	}
	return b, nil
}
