// Package config loads process settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// General
	Port     string
	AppEnv   string
	LogLevel string
	Locale   string

	// Storage
	StoreBackend     string // "redis" or "memory"
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionTTL       time.Duration
	SessionCacheSize int
	RecentViewLimit  int

	// Postgres (discounts, outbox). Empty disables both.
	DBURL string

	// Kafka
	KafkaBroker  string
	KafkaTopic   string
	KafkaGroupID string

	// Auth / remote backend
	JWTSecret      string
	BackendBaseURL string
	BackendTimeout time.Duration
	CORSOrigins    []string

	// Pricing
	FreeShippingThreshold   int64
	ShippingFee             int64
	DiscountTieBreak        string // "largest" or "first"
	DiscountEnforceValidity bool
}

func DefaultConfig() *Config {
	return &Config{
		Port:                  "8080",
		AppEnv:                "production",
		LogLevel:              "info",
		Locale:                "ko-KR",
		StoreBackend:          "redis",
		RedisAddr:             "localhost:6379",
		SessionTTL:            30 * 24 * time.Hour,
		SessionCacheSize:      1024,
		RecentViewLimit:       20,
		KafkaBroker:           "localhost:9092",
		KafkaTopic:            "order.events",
		KafkaGroupID:          "cart-consumer-group",
		BackendBaseURL:        "http://localhost:8000/api/v1",
		BackendTimeout:        5 * time.Second,
		CORSOrigins:           []string{"http://localhost:3000"},
		FreeShippingThreshold: 50000,
		ShippingFee:           3000,
		DiscountTieBreak:      "largest",
	}
}

// LoadFromEnv reads .env (if present) and overrides fields from the
// environment. Unparseable values keep the current setting.
func (c *Config) LoadFromEnv() {
	_ = godotenv.Load()

	setString(&c.Port, "PORT")
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Locale, "LOCALE")

	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.StoreBackend = strings.ToLower(v)
	}
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.RedisDB, "REDIS_DB")
	setDuration(&c.SessionTTL, "SESSION_TTL")
	setInt(&c.SessionCacheSize, "SESSION_CACHE_SIZE")
	setInt(&c.RecentViewLimit, "RECENT_VIEW_LIMIT")

	setString(&c.DBURL, "DB_URL")

	setString(&c.KafkaBroker, "KAFKA_BROKER")
	setString(&c.KafkaTopic, "KAFKA_TOPIC")
	setString(&c.KafkaGroupID, "KAFKA_GROUP_ID")

	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.BackendBaseURL, "BACKEND_BASE_URL")
	setDuration(&c.BackendTimeout, "BACKEND_TIMEOUT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}

	setInt64(&c.FreeShippingThreshold, "FREE_SHIPPING_THRESHOLD")
	setInt64(&c.ShippingFee, "SHIPPING_FEE")
	if v := os.Getenv("DISCOUNT_TIE_BREAK"); v != "" {
		c.DiscountTieBreak = strings.ToLower(v)
	}
	if v := os.Getenv("DISCOUNT_ENFORCE_VALIDITY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DiscountEnforceValidity = b
		}
	}
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			*dst = n
		}
	}
}

// setDuration accepts Go durations ("90s") or plain seconds.
func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
	}
}
