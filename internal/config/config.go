package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Notifier kinds accepted by NOTIFIER.
const (
	NotifierLog      = "log"
	NotifierNoop     = "noop"
	NotifierNATS     = "nats"
	NotifierRedis    = "redis"
	NotifierPostgres = "postgres"
)

type Config struct {
	ServerPort  string
	LogLevel    string
	ServiceName string

	Notifier       string
	NotifyTimeout  time.Duration
	BreakerEnabled bool

	NATSURL     string
	NATSSubject string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	PostgresChannel string

	TracingEnabled bool
	OTLPEndpoint   string
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		ServiceName: getEnv("SERVICE_NAME", "account-ledger"),

		Notifier:       getEnv("NOTIFIER", NotifierLog),
		NotifyTimeout:  getEnvDuration("NOTIFY_TIMEOUT", 2*time.Second),
		BreakerEnabled: getEnvBool("NOTIFY_BREAKER", true),

		NATSURL:     getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: getEnv("NATS_SUBJECT", "ledger.notifications"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisChannel:  getEnv("REDIS_CHANNEL", "ledger.notifications"),

		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "password"),
		DBName:          getEnv("DB_NAME", "account_ledger"),
		PostgresChannel: getEnv("PG_NOTIFY_CHANNEL", "ledger_notifications"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

// GetDBConnectionString returns the lib/pq DSN used by the Postgres notifier.
func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, defaultValue.String()))
	if err != nil {
		return defaultValue
	}
	return v
}
