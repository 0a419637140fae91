package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Token    TokenConfig
	BPM      BPMConfig
	Storage  StorageConfig
	SMTP     SMTPConfig
	Redis    RedisConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// TokenConfig holds the signing settings for self-service tokens (tokenid)
type TokenConfig struct {
	Secret     string
	Expiration string
}

// BPMConfig points at the workflow/approval middleware
type BPMConfig struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	MaxRetries       int
	BreakerFailRatio float64
	BreakerTimeout   time.Duration
	CallbackToken    string
}

type StorageConfig struct {
	Type     string // local, ftp, sftp
	BasePath string
	BaseURL  string
	FTP      FTPConfig
}

// FTPConfig is shared by the ftp and sftp backends
type FTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	RootDir  string
	Timeout  time.Duration
	HostKey  string // sftp only, authorized_keys format
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CronConfig struct {
	FormSyncInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS"),
	}

	config.Token = TokenConfig{
		Secret:     getEnv("TOKEN_SECRET_KEY", ""),
		Expiration: getEnv("TOKEN_EXPIRATION_TIME", "720h"),
	}

	// BPM configuration
	bpmTimeout, err := time.ParseDuration(getEnv("BPM_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BPM_TIMEOUT: %w", err)
	}
	bpmRetries, err := strconv.Atoi(getEnv("BPM_MAX_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid BPM_MAX_RETRIES: %w", err)
	}
	bpmFailRatio, err := strconv.ParseFloat(getEnv("BPM_BREAKER_FAIL_RATIO", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BPM_BREAKER_FAIL_RATIO: %w", err)
	}
	bpmBreakerTimeout, err := time.ParseDuration(getEnv("BPM_BREAKER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BPM_BREAKER_TIMEOUT: %w", err)
	}

	config.BPM = BPMConfig{
		BaseURL:          strings.TrimRight(getEnv("BPM_BASE_URL", ""), "/"),
		APIKey:           getEnv("BPM_API_KEY", ""),
		Timeout:          bpmTimeout,
		MaxRetries:       bpmRetries,
		BreakerFailRatio: bpmFailRatio,
		BreakerTimeout:   bpmBreakerTimeout,
		CallbackToken:    getEnv("BPM_CALLBACK_TOKEN", ""),
	}

	// Storage configuration
	ftpPort, err := strconv.Atoi(getEnv("FTP_PORT", "21"))
	if err != nil {
		return nil, fmt.Errorf("invalid FTP_PORT: %w", err)
	}
	ftpTimeout, err := time.ParseDuration(getEnv("FTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FTP_TIMEOUT: %w", err)
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		FTP: FTPConfig{
			Host:     getEnv("FTP_HOST", ""),
			Port:     ftpPort,
			User:     getEnv("FTP_USER", ""),
			Password: getEnv("FTP_PASSWORD", ""),
			RootDir:  getEnv("FTP_ROOT_DIR", "/attachments"),
			Timeout:  ftpTimeout,
			HostKey:  getEnv("SFTP_HOST_KEY", ""),
		},
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@example.com"),
		FromName: getEnv("SMTP_FROM_NAME", "HR Self-Service"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	formSyncInterval, err := time.ParseDuration(getEnv("CRON_FORM_SYNC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_FORM_SYNC_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{FormSyncInterval: formSyncInterval}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.Token.Expiration); err != nil {
		return fmt.Errorf("TOKEN_EXPIRATION_TIME is invalid: %w", err)
	}
	if c.BPM.BaseURL == "" {
		return fmt.Errorf("BPM_BASE_URL is required")
	}
	if c.BPM.BreakerFailRatio <= 0 || c.BPM.BreakerFailRatio > 1 {
		return fmt.Errorf("BPM_BREAKER_FAIL_RATIO must be in (0, 1]")
	}

	switch c.Storage.Type {
	case "local":
	case "ftp", "sftp":
		if c.Storage.FTP.Host == "" {
			return fmt.Errorf("FTP_HOST is required for %s storage", c.Storage.Type)
		}
		if c.Storage.Type == "sftp" && c.Storage.FTP.HostKey == "" {
			return fmt.Errorf("SFTP_HOST_KEY is required for sftp storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string = strings.Split(value, ",")
	return result
}
