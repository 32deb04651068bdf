package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// PostgresDSN enables the local sealed-record mirror when set.
	PostgresDSN string

	Redis RedisConfig
	Kafka KafkaConfig

	// LedgerURL points at the external ledger service. When empty the
	// process runs against the in-memory store, for local development.
	LedgerURL     string
	LedgerTimeout time.Duration
}

// RedisConfig configures the optional sealed-record cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the optional audit trail sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DOCSEAL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("DOCSEAL_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	ledgerTimeout := duration(os.Getenv("DOCSEAL_LEDGER_TIMEOUT"), 10*time.Second)

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		PostgresDSN:   os.Getenv("DOCSEAL_POSTGRES_DSN"),
		Redis:         redisFromEnv(),
		Kafka:         kafkaFromEnv(),
		LedgerURL:     os.Getenv("DOCSEAL_LEDGER_URL"),
		LedgerTimeout: ledgerTimeout,
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("DOCSEAL_REDIS_URL"),
		PoolSize:     integer(os.Getenv("DOCSEAL_REDIS_POOL_SIZE"), 10),
		MinIdleConns: integer(os.Getenv("DOCSEAL_REDIS_MIN_IDLE"), 2),
		DialTimeout:  duration(os.Getenv("DOCSEAL_REDIS_DIAL_TIMEOUT"), 5*time.Second),
		ReadTimeout:  duration(os.Getenv("DOCSEAL_REDIS_READ_TIMEOUT"), 3*time.Second),
		WriteTimeout: duration(os.Getenv("DOCSEAL_REDIS_WRITE_TIMEOUT"), 3*time.Second),
		CacheTTL:     duration(os.Getenv("DOCSEAL_CACHE_TTL"), 15*time.Minute),
	}
}

func kafkaFromEnv() KafkaConfig {
	brokers := os.Getenv("DOCSEAL_KAFKA_BROKERS")
	if brokers == "" {
		return KafkaConfig{}
	}
	topic := os.Getenv("DOCSEAL_KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "docseal.audit"
	}
	return KafkaConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
	}
}

func integer(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
