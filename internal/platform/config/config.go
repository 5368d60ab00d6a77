package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service. Values come
// from the environment so deployments stay twelve-factor and main stays lean.
type Config struct {
	Addr string

	JWTSigningKey string
	JWTIssuer     string

	RedisURL    string
	PostgresDSN string

	KafkaBrokers     []string
	AttributionTopic string

	// Session lifetimes for the two persistence policies selected at login.
	DurableSessionTTL   time.Duration
	EphemeralSessionTTL time.Duration
}

// FromEnv builds a Config from environment variables, applying development
// defaults where a value is absent.
func FromEnv() Config {
	cfg := Config{
		Addr:                getEnv("COMPARO_ADDR", ":8080"),
		JWTSigningKey:       getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:           getEnv("JWT_ISSUER", "comparo"),
		RedisURL:            os.Getenv("REDIS_URL"),
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		AttributionTopic:    getEnv("ATTRIBUTION_TOPIC", "comparo.attribution.clicks"),
		DurableSessionTTL:   getDuration("SESSION_TTL_DURABLE", 30*24*time.Hour),
		EphemeralSessionTTL: getDuration("SESSION_TTL_EPHEMERAL", 12*time.Hour),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
