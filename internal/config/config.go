package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/landingpages/internal/cache"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SiteBaseURL       string
	SuperRootUserName string
	SuperRootPassword string

	LogLevel  string
	LogFormat string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheKeyPrefix string
	CacheTTL       time.Duration

	RelatedCommunityLimit int
}

// RedisEnabled 表示是否配置了共享缓存。
func (c AppConfig) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Cache 返回快照缓存的配置。
func (c AppConfig) Cache() cache.Config {
	return cache.Config{
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		KeyPrefix:     c.CacheKeyPrefix,
		TTL:           c.CacheTTL,
	}
}

// Load 依次读取 .env、可选的 config.yaml 与环境变量，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return AppConfig{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return FromViper(v), nil
}

// FromViper 将 viper 中的键映射为 AppConfig；环境变量优先于配置文件。
func FromViper(v *viper.Viper) AppConfig {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "landing.db")
	v.SetDefault("session_secret", "landing-dev-secret")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("site_base_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_key_prefix", "landing")
	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("related_community_limit", 6)

	port := trimmed(v, "port")
	listenAddr := trimmed(v, "listen_addr")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	ttl := v.GetDuration("cache_ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	limit := v.GetInt("related_community_limit")
	if limit <= 0 {
		limit = 6
	}

	return AppConfig{
		ListenAddr:            listenAddr,
		Port:                  port,
		DatabasePath:          trimmed(v, "database_path"),
		SessionSecret:         trimmed(v, "session_secret"),
		GinMode:               trimmed(v, "gin_mode"),
		SiteBaseURL:           strings.TrimRight(trimmed(v, "site_base_url"), "/"),
		SuperRootUserName:     trimmed(v, "super_root_user_name"),
		SuperRootPassword:     trimmed(v, "super_root_password"),
		LogLevel:              strings.ToLower(trimmed(v, "log_level")),
		LogFormat:             strings.ToLower(trimmed(v, "log_format")),
		RedisAddr:             trimmed(v, "redis_addr"),
		RedisPassword:         trimmed(v, "redis_password"),
		RedisDB:               v.GetInt("redis_db"),
		CacheKeyPrefix:        trimmed(v, "cache_key_prefix"),
		CacheTTL:              ttl,
		RelatedCommunityLimit: limit,
	}
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
