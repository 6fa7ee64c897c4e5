package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Rollout and eligibility
// settings live in the shared config store, not here.
type Server struct {
	Addr          string
	AdminJWTKey   string
	Redis         RedisConfig
	KafkaSeeds     []string
	KafkaTopic     string
	PostgresDSN    string
	ResultSink     string // "log", "kafka", "postgres", "noop"
	EligibilityURL string
	ShutdownGrace  time.Duration
}

// RedisConfig holds connection settings for the shared config store.
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
	addr := os.Getenv("SWITCHYARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtKey := os.Getenv("SWITCHYARD_ADMIN_JWT_KEY")
	if jwtKey == "" {
		// Development default - must be overridden in production.
		jwtKey = "dev-secret-key-change-in-production"
	}

	sink := os.Getenv("SWITCHYARD_RESULT_SINK")
	if sink == "" {
		sink = "log"
	}

	var seeds []string
	if raw := os.Getenv("SWITCHYARD_KAFKA_SEEDS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				seeds = append(seeds, s)
			}
		}
	}

	topic := os.Getenv("SWITCHYARD_KAFKA_TOPIC")
	if topic == "" {
		topic = "switchyard.comparisons"
	}

	return Server{
		Addr:        addr,
		AdminJWTKey: jwtKey,
		Redis: RedisConfig{
			URL:          os.Getenv("SWITCHYARD_REDIS_URL"),
			PoolSize:     envInt("SWITCHYARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SWITCHYARD_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaSeeds:     seeds,
		KafkaTopic:     topic,
		PostgresDSN:    os.Getenv("SWITCHYARD_POSTGRES_DSN"),
		ResultSink:     sink,
		EligibilityURL: os.Getenv("SWITCHYARD_ELIGIBILITY_URL"),
		ShutdownGrace:  10 * time.Second,
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
