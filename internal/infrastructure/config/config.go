package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/finbooks/backoffice/internal/domain/service"
	"github.com/finbooks/backoffice/pkg/auth"
	"github.com/finbooks/backoffice/pkg/kafka"
	"github.com/finbooks/backoffice/pkg/observability"
	"github.com/finbooks/backoffice/pkg/postgres"
)

// Config holds the application configuration.
type Config struct {
	ServiceName      string
	GRPCPort         int
	HTTPPort         int
	DB               postgres.Config
	Kafka            kafka.Config
	JWT              auth.JWTConfig
	Log              observability.LogConfig
	Resolver         service.ResolverConfig
	MigrationsDir    string
	EnableReflection bool
}

// Validate checks required configuration values.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" && c.JWT.PublicKeyPEM == "" && c.JWT.PrivateKeyPEM == "" {
		panic("JWT_SECRET (or a JWT key pair) is required")
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	resolver := service.DefaultResolverConfig()
	resolver.ReceivablePrefixes = getEnvList("RESOLVER_RECEIVABLE_PREFIXES", resolver.ReceivablePrefixes)
	resolver.PayablePrefixes = getEnvList("RESOLVER_PAYABLE_PREFIXES", resolver.PayablePrefixes)
	resolver.IncomePrefixes = getEnvList("RESOLVER_INCOME_PREFIXES", resolver.IncomePrefixes)
	resolver.ExpensePrefixes = getEnvList("RESOLVER_EXPENSE_PREFIXES", resolver.ExpensePrefixes)
	resolver.TaxPayablePrefixes = getEnvList("RESOLVER_TAX_PAYABLE_PREFIXES", resolver.TaxPayablePrefixes)
	resolver.TaxRecoverablePrefixes = getEnvList("RESOLVER_TAX_RECOVERABLE_PREFIXES", resolver.TaxRecoverablePrefixes)

	return Config{
		ServiceName: "invoicing-service",
		GRPCPort:    getEnvInt("GRPC_PORT", 9091),
		HTTPPort:    getEnvInt("HTTP_PORT", 8091),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "finbooks"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "finbooks_invoicing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		Kafka: kafka.Config{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: auth.JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PrivateKeyPEM: getEnv("JWT_PRIVATE_KEY_PEM", ""),
			PublicKeyPEM:  getEnv("JWT_PUBLIC_KEY_PEM", ""),
			Issuer:        getEnv("JWT_ISSUER", "finbooks"),
			Expiration:    getEnvDuration("JWT_EXPIRATION", 1*time.Hour),
		},
		Log: observability.LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Resolver:         resolver,
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
		EnableReflection: getEnvBool("GRPC_REFLECTION", false),
	}
}

// GRPCAddr returns the full gRPC listen address.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddr returns the full HTTP listen address.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
