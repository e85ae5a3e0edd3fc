package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigError - ошибка конфигурации с именем недостающего или
// некорректного параметра. Приложение падает при старте, а не в
// середине прохода.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func missing(field string) *ConfigError {
	return &ConfigError{Field: field, Reason: "required but not set"}
}

// Режимы доставки уведомлений
const (
	NotifyModeQueue = "queue" // celery-задача через AMQP
	NotifyModeMail  = "mail"  // прямой HTTP POST в почтовый сервис
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Kraken   KrakenConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	Engine   EngineConfig
	Logging  LoggingConfig
}

// ServerConfig - настройки HTTP сервера (админ-API)
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig - настройки подключения к БД (журнал событий)
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// SecurityConfig - настройки безопасности
type SecurityConfig struct {
	APITokenHash  string // bcrypt-хеш токена админ-API
	EncryptionKey string // AES-256 ключ для расшифровки секрета Kraken (опционально)
}

// KrakenConfig - доступ к Kraken REST API
type KrakenConfig struct {
	KeysPath string // путь к keys.json
	Account  string // имя аккаунта внутри keys.json
	BaseURL  string
	Timeout  time.Duration
}

// RedisConfig - key-value хранилище порогов и результатов задач
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NotifyConfig - доставка уведомлений
type NotifyConfig struct {
	Mode      string        // queue | mail
	AMQPURL   string        // брокер celery (queue-режим)
	QueueName string        // имя очереди celery
	MailURL   string        // базовый URL почтового сервиса (mail-режим)
	JWTSecret string        // секрет для подписи токена почтового сервиса
	Recipient string        // адрес получателя
	Timeout   time.Duration // таймаут HTTP вызова почтового сервиса
}

// EngineConfig - параметры движка
type EngineConfig struct {
	PassInterval time.Duration // период между проходами
	RateLimit    float64       // запросов в секунду к Kraken
	RateBurst    float64
}

// LoggingConfig - настройки логирования
type LoggingConfig struct {
	Level  string
	Format string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "dancespiele"),
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Security: SecurityConfig{
			APITokenHash:  getEnv("API_TOKEN_HASH", ""),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Kraken: KrakenConfig{
			KeysPath: getEnv("KRAKEN_KEYS_PATH", "keys.json"),
			Account:  getEnv("KRAKEN_ACCOUNT", ""),
			BaseURL:  getEnv("KRAKEN_BASE_URL", "https://api.kraken.com"),
			Timeout:  getEnvAsDuration("KRAKEN_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Notify: NotifyConfig{
			Mode:      getEnv("NOTIFY_MODE", NotifyModeQueue),
			AMQPURL:   getEnv("AMQP_URL", ""),
			QueueName: getEnv("AMQP_QUEUE", "stop_loss_queue"),
			MailURL:   getEnv("API_URL", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
			Recipient: getEnv("RECIPIENT_EMAIL", ""),
			Timeout:   getEnvAsDuration("NOTIFY_TIMEOUT", 10*time.Second),
		},
		Engine: EngineConfig{
			PassInterval: getEnvAsDuration("PASS_INTERVAL", 2*time.Minute),
			RateLimit:    getEnvAsFloat("KRAKEN_RATE_LIMIT", 1),
			RateBurst:    getEnvAsFloat("KRAKEN_RATE_BURST", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate проверяет обязательные параметры и диапазоны
func (c *Config) validate() error {
	if c.Kraken.Account == "" {
		return missing("KRAKEN_ACCOUNT")
	}
	if c.Kraken.KeysPath == "" {
		return missing("KRAKEN_KEYS_PATH")
	}

	if c.Security.APITokenHash == "" {
		return missing("API_TOKEN_HASH")
	}
	if key := c.Security.EncryptionKey; key != "" && len(key) != 32 {
		return &ConfigError{Field: "ENCRYPTION_KEY", Reason: "must be exactly 32 bytes for AES-256"}
	}

	switch c.Notify.Mode {
	case NotifyModeQueue:
		if c.Notify.AMQPURL == "" {
			return missing("AMQP_URL")
		}
	case NotifyModeMail:
		if c.Notify.MailURL == "" {
			return missing("API_URL")
		}
		if c.Notify.JWTSecret == "" {
			return missing("JWT_SECRET")
		}
	default:
		return &ConfigError{Field: "NOTIFY_MODE", Reason: fmt.Sprintf("must be %q or %q, got %q", NotifyModeQueue, NotifyModeMail, c.Notify.Mode)}
	}
	if c.Notify.Recipient == "" {
		return missing("RECIPIENT_EMAIL")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "SERVER_PORT", Reason: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port)}
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return &ConfigError{Field: "DB_PORT", Reason: fmt.Sprintf("must be between 1 and 65535, got %d", c.Database.Port)}
	}

	if c.Engine.PassInterval <= 0 {
		return &ConfigError{Field: "PASS_INTERVAL", Reason: fmt.Sprintf("must be positive, got %v", c.Engine.PassInterval)}
	}
	if c.Engine.RateLimit <= 0 {
		return &ConfigError{Field: "KRAKEN_RATE_LIMIT", Reason: fmt.Sprintf("must be positive, got %v", c.Engine.RateLimit)}
	}
	if c.Kraken.Timeout <= 0 {
		return &ConfigError{Field: "KRAKEN_TIMEOUT", Reason: fmt.Sprintf("must be positive, got %v", c.Kraken.Timeout)}
	}

	return nil
}

// DSN возвращает строку подключения к базе данных
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// DSNWithoutPassword возвращает строку подключения без пароля (для логирования)
func (d DatabaseConfig) DSNWithoutPassword() string {
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode)
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
