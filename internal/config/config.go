package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	devJWTSecret = "dev-only-storefront-secret"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName            string `mapstructure:"SERVICE_NAME"`
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	GRPCPort               string `mapstructure:"GRPC_PORT"`
	StoreDriver            string `mapstructure:"STORE_DRIVER"`
	MongoURI               string `mapstructure:"MONGO_URI"`
	MongoDatabase          string `mapstructure:"MONGO_DATABASE"`
	NATSURL                string `mapstructure:"NATS_URL"`
	JWTSecret              string `mapstructure:"JWT_SECRET"`
	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	HistorySessionTTL time.Duration `mapstructure:"HISTORY_SESSION_TTL"`

	Redis RedisConfig `mapstructure:",squash"`
	SMTP  SMTPConfig  `mapstructure:",squash"`
}

// RedisConfig configures the cart store and catalog cache. An empty Addr disables Redis.
type RedisConfig struct {
	Addr            string        `mapstructure:"REDIS_ADDR"`
	Password        string        `mapstructure:"REDIS_PASSWORD"`
	DB              int           `mapstructure:"REDIS_DB"`
	CartTTL         time.Duration `mapstructure:"CART_TTL"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
}

// Enabled reports whether a Redis server was configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// SMTPConfig configures outgoing mail. An empty Host disables mail.
type SMTPConfig struct {
	Host        string `mapstructure:"SMTP_HOST"`
	Port        int    `mapstructure:"SMTP_PORT"`
	Username    string `mapstructure:"SMTP_USERNAME"`
	Password    string `mapstructure:"SMTP_PASSWORD"`
	SenderEmail string `mapstructure:"SMTP_SENDER"`
}

// Enabled reports whether an SMTP relay was configured.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "storefront-service")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("GRPC_PORT", "50051")
	v.SetDefault("STORE_DRIVER", StoreDriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DATABASE", "sweetshop")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("HISTORY_SESSION_TTL", "30m")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CART_TTL", "168h")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_SENDER", "")
}

// LoadConfig reads configuration from the environment. godotenv has already
// merged a .env file into the environment by the time this runs.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(appLogger); err != nil {
		return nil, err
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("grpc_port", cfg.GRPCPort),
		zap.String("store_driver", cfg.StoreDriver),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("redis_enabled", cfg.Redis.Enabled()),
		zap.Bool("nats_enabled", cfg.NATSURL != ""),
		zap.Bool("smtp_enabled", cfg.SMTP.Enabled()),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

func (c *Config) validate(appLogger *logger.Logger) error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", StoreDriverMongo)
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when STORE_DRIVER=%s", StoreDriverMongo)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET is empty, using the development secret. Set a strong secret outside local development.")
		c.JWTSecret = devJWTSecret
	}
	if c.HistorySessionTTL <= 0 {
		c.HistorySessionTTL = 30 * time.Minute
	}
	return nil
}
