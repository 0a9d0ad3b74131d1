package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"hr-service/internal/events"
	"hr-service/internal/shared/connection"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	PublisherKafkaGo = "kafka-go"
	PublisherSarama  = "sarama"
	PublisherNone    = "none"
)

type Config struct {
	Port        string
	AppEnv      string
	StoreDriver string
	Postgres    connection.PostgresConfig
	RedisAddr   string

	EventPublisher string
	KafkaBrokers   []string
	EventsTopic    string
	KafkaAsync     bool

	JWTSecret       string
	AdminRole       string
	CasbinModelPath string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads the process environment. .env is loaded by the caller
// beforehand. The error names the first missing or invalid value.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      os.Getenv("APP_ENV"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     os.Getenv("DB_PORT"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		EventPublisher:  strings.ToLower(getEnv("EVENT_PUBLISHER", PublisherKafkaGo)),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:     getEnv("HR_EVENTS_TOPIC", events.FuncionarioLifecycleTopic),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminRole:       getEnv("ADMIN_ROLE", "ADMIN"),
		CasbinModelPath: os.Getenv("CASBIN_MODEL_PATH"),
	}

	async, err := strconv.ParseBool(getEnv("KAFKA_ASYNC", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid KAFKA_ASYNC: %w", err)
	}
	cfg.KafkaAsync = async

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		required := []struct{ name, value string }{
			{"DB_HOST", cfg.Postgres.Host},
			{"DB_USER", cfg.Postgres.User},
			{"DB_NAME", cfg.Postgres.DBName},
			{"DB_PORT", cfg.Postgres.Port},
		}
		for _, r := range required {
			if r.value == "" {
				return Config{}, fmt.Errorf("missing %s", r.name)
			}
		}
	case StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.EventPublisher {
	case PublisherKafkaGo, PublisherSarama:
		if len(cfg.KafkaBrokers) == 0 {
			return Config{}, fmt.Errorf("missing KAFKA_BROKERS")
		}
	case PublisherNone:
	default:
		return Config{}, fmt.Errorf("invalid EVENT_PUBLISHER %q", cfg.EventPublisher)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
