package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	AuthMode          string
	JWTSharedSecret   string
	OIDCIssuerURL     string
	OIDCAudience      string
	OIDCJWKSURL       string
	OIDCClockSkewSecs int
	JWKSCacheTTL      time.Duration
	JWKSFetchTimeout  time.Duration

	EventSource         string
	EventSink           string
	EventPublishTimeout time.Duration
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	RedisEventChannel   string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:            addr,
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		LogLevel:            envDefault("LOG_LEVEL", "info"),
		AuthMode:            os.Getenv("AUTH_MODE"),
		JWTSharedSecret:     os.Getenv("JWT_SHARED_SECRET"),
		OIDCIssuerURL:       os.Getenv("OIDC_ISSUER_URL"),
		OIDCAudience:        os.Getenv("OIDC_AUDIENCE"),
		OIDCJWKSURL:         os.Getenv("OIDC_JWKS_URL"),
		OIDCClockSkewSecs:   envIntDefault("OIDC_CLOCK_SKEW_SECONDS", 60),
		JWKSCacheTTL:        envSecondsDefault("JWKS_CACHE_TTL_SECONDS", 300),
		JWKSFetchTimeout:    envSecondsDefault("JWKS_FETCH_TIMEOUT_SECONDS", 2),
		EventSource:         envDefault("EVENT_SOURCE", "orders-service"),
		EventSink:           envDefault("EVENT_SINK", "log"),
		EventPublishTimeout: envSecondsDefault("EVENT_PUBLISH_TIMEOUT_SECONDS", 1),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             envIntDefault("REDIS_DB", 0),
		RedisEventChannel:   envDefault("REDIS_EVENT_CHANNEL", "orders.events"),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func envSecondsDefault(key string, def int) time.Duration {
	return time.Duration(envIntDefault(key, def)) * time.Second
}
