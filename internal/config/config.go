package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	S3        S3Config
	Log       LogConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds settings for validating the external identity provider's
// access tokens. The backend only verifies; it never issues tokens.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ExtractorProviderConfig holds settings for a single document-understanding
// model provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds document extraction settings. Contract selects the
// instruction-contract version and with it the response shape the parser
// expects.
type ExtractorConfig struct {
	ExtractorProviderConfig `mapstructure:",squash"`

	Contract            string `mapstructure:"contract"`
	PipelineTimeoutSecs int    `mapstructure:"pipeline_timeout_secs"`
}

// Load reads configuration from environment variables with the LUXON_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LUXON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "luxon")
	v.SetDefault("db.password", "luxon_secret")
	v.SetDefault("db.name", "luxon_tms")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "luxon-ratecons")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "dispatch@luxontms.com")
	v.SetDefault("email.from_name", "Luxon TMS")

	// Extractor defaults
	v.SetDefault("extractor.provider", "claude")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("extractor.timeout_secs", 55)
	v.SetDefault("extractor.contract", "csv-v2")
	v.SetDefault("extractor.pipeline_timeout_secs", 60)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "LUXON_SERVER_PORT",
		"server.read_timeout":             "LUXON_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "LUXON_SERVER_WRITE_TIMEOUT",
		"server.environment":              "LUXON_SERVER_ENVIRONMENT",
		"db.host":                         "LUXON_DB_HOST",
		"db.port":                         "LUXON_DB_PORT",
		"db.user":                         "LUXON_DB_USER",
		"db.password":                     "LUXON_DB_PASSWORD",
		"db.name":                         "LUXON_DB_NAME",
		"db.sslmode":                      "LUXON_DB_SSLMODE",
		"db.max_open":                     "LUXON_DB_MAX_OPEN",
		"db.max_idle":                     "LUXON_DB_MAX_IDLE",
		"auth.jwt_secret":                 "LUXON_AUTH_JWT_SECRET",
		"auth.issuer":                     "LUXON_AUTH_ISSUER",
		"auth.audience":                   "LUXON_AUTH_AUDIENCE",
		"s3.region":                       "LUXON_S3_REGION",
		"s3.bucket":                       "LUXON_S3_BUCKET",
		"s3.endpoint":                     "LUXON_S3_ENDPOINT",
		"s3.access_key":                   "LUXON_S3_ACCESS_KEY",
		"s3.secret_key":                   "LUXON_S3_SECRET_KEY",
		"s3.max_file_size_mb":             "LUXON_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":               "LUXON_S3_PRESIGN_EXPIRY",
		"log.level":                       "LUXON_LOG_LEVEL",
		"log.format":                      "LUXON_LOG_FORMAT",
		"cors.allowed_origins":            "LUXON_CORS_ALLOWED_ORIGINS",
		"email.provider":                  "LUXON_EMAIL_PROVIDER",
		"email.region":                    "LUXON_EMAIL_REGION",
		"email.from_address":              "LUXON_EMAIL_FROM_ADDRESS",
		"email.from_name":                 "LUXON_EMAIL_FROM_NAME",
		"extractor.provider":              "LUXON_EXTRACTOR_PROVIDER",
		"extractor.api_key":               "LUXON_EXTRACTOR_API_KEY",
		"extractor.default_model":         "LUXON_EXTRACTOR_DEFAULT_MODEL",
		"extractor.timeout_secs":          "LUXON_EXTRACTOR_TIMEOUT_SECS",
		"extractor.contract":              "LUXON_EXTRACTOR_CONTRACT",
		"extractor.pipeline_timeout_secs": "LUXON_EXTRACTOR_PIPELINE_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LUXON_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LUXON_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
		Audience:  v.GetString("auth.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Extractor = ExtractorConfig{
		ExtractorProviderConfig: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.provider"),
			APIKey:       v.GetString("extractor.api_key"),
			DefaultModel: v.GetString("extractor.default_model"),
			TimeoutSecs:  v.GetInt("extractor.timeout_secs"),
		},
		Contract:            v.GetString("extractor.contract"),
		PipelineTimeoutSecs: v.GetInt("extractor.pipeline_timeout_secs"),
	}

	return cfg, nil
}
