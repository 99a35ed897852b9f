package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	ServerPort string `mapstructure:"SERVER_PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogFile  string `mapstructure:"LOG_FILE"`

	StorageType    string `mapstructure:"STORAGE_TYPE"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket    string `mapstructure:"MINIO_BUCKET"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// JWTTTL returns the token lifetime.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// AllowedOrigins splits the comma separated CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

var AppConfig *Config

var defaults = map[string]any{
	"DATABASE_URL":          "",
	"JWT_SECRET":            "",
	"JWT_TTL_HOURS":         14 * 24,
	"SERVER_PORT":           "8080",
	"GIN_MODE":              "debug",
	"LOG_LEVEL":             "info",
	"LOG_FILE":              "logs/app.log",
	"STORAGE_TYPE":          "local",
	"UPLOAD_DIR":            "./uploads",
	"MINIO_ENDPOINT":        "",
	"MINIO_ACCESS_KEY":      "",
	"MINIO_SECRET_KEY":      "",
	"MINIO_BUCKET":          "postimages",
	"MINIO_USE_SSL":         false,
	"CORS_ALLOWED_ORIGINS":  "",
	"RATE_LIMIT_PER_MINUTE": 600,
}

// LoadConfig loads the configuration from a .env file in path and from
// environment variables, which take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.JWTTTLHours <= 0 {
		return nil, errors.New("JWT_TTL_HOURS must be positive")
	}
	if cfg.StorageType != "local" && cfg.StorageType != "minio" {
		return nil, errors.New("STORAGE_TYPE must be local or minio")
	}

	AppConfig = &cfg
	return &cfg, nil
}
