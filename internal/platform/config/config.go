package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	// Addr is where the ops endpoints (healthz, metrics) listen.
	Addr string
	// AdminAccount is the fixed platform administrator identity,
	// set at deployment time.
	AdminAccount string
	// PostgresDSN selects durable stores when non-empty; otherwise the
	// process runs on in-memory stores.
	PostgresDSN string
	// JWTSigningKey verifies caller identity claims at the boundary.
	JWTSigningKey string
	// KafkaBrokers enables the Kafka audit sink when non-empty.
	KafkaBrokers []string
	// KafkaAuditTopic is the audit event topic.
	KafkaAuditTopic string
	// Redis configures the product record cache.
	Redis RedisConfig
	// ProductCacheTTL bounds how long cached product records live. Records
	// are immutable, so the TTL only bounds cache memory, not staleness.
	ProductCacheTTL time.Duration
}

// RedisConfig carries connection settings for the optional Redis cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PRODAUTH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("PRODAUTH_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("PRODAUTH_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("PRODAUTH_KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "prodauth.audit"
	}

	cacheTTL := 15 * time.Minute
	if raw := os.Getenv("PRODAUTH_PRODUCT_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cacheTTL = parsed
		}
	}

	return Server{
		Addr:            addr,
		AdminAccount:    os.Getenv("PRODAUTH_ADMIN_ACCOUNT"),
		PostgresDSN:     os.Getenv("PRODAUTH_POSTGRES_DSN"),
		JWTSigningKey:   jwtSigningKey,
		KafkaBrokers:    brokers,
		KafkaAuditTopic: topic,
		Redis: RedisConfig{
			URL:          os.Getenv("PRODAUTH_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		ProductCacheTTL: cacheTTL,
	}
}
