package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server     ServerConfig
	API        APIConfig
	Business   BusinessConfig
	Session    SessionConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Features   FeatureFlags
	TerminalID string
	LogLevel   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// APIConfig points the terminal at the store backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	LoginPath string
}

// BusinessConfig holds the values that drive sale and quote totals.
type BusinessConfig struct {
	TaxRate        decimal.Decimal
	Currency       string
	CurrencySymbol string
}

type SessionConfig struct {
	Store      string // sqlite | redis | memory
	SQLitePath string
	KeyPrefix  string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
}

type FeatureFlags struct {
	EnableDraftCaching bool
	EnableEvents       bool
	PostgresDrafts     bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8090),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getEnvString("API_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:   time.Duration(getEnvInt("API_TIMEOUT", 15)) * time.Second,
			LoginPath: getEnvString("LOGIN_PATH", "/login"),
		},
		Business: BusinessConfig{
			TaxRate:        getEnvDecimal("TAX_RATE", decimal.RequireFromString("0.18")),
			Currency:       getEnvString("CURRENCY", "PEN"),
			CurrencySymbol: getEnvString("CURRENCY_SYMBOL", "S/"),
		},
		Session: SessionConfig{
			Store:      getEnvString("SESSION_STORE", "sqlite"),
			SQLitePath: getEnvString("SESSION_SQLITE_PATH", "pos-session.db"),
			KeyPrefix:  getEnvString("SESSION_KEY_PREFIX", "pos:session:"),
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "acme"),
			Password:     getEnvString("DB_PASSWORD", "acme"),
			Name:         getEnvString("DB_NAME", "acme_pos"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 1800)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			EventsTopic: getEnvString("KAFKA_EVENTS_TOPIC", "pos.terminal.events"),
		},
		Features: FeatureFlags{
			EnableDraftCaching: getEnvBool("FEATURE_DRAFT_CACHING", false),
			EnableEvents:       getEnvBool("FEATURE_EVENTS", false),
			PostgresDrafts:     getEnvBool("FEATURE_POSTGRES_DRAFTS", false),
		},
		TerminalID: getEnvString("TERMINAL_ID", "pos-01"),
		LogLevel:   getEnvString("LOG_LEVEL", "info"),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDecimal keeps monetary knobs out of float64.
func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
