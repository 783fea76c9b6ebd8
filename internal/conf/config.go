package conf

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// KetoConfig holds the Ory Keto configuration. Namespace is the relation
// namespace role assignments are written under.
type KetoConfig struct {
	ReadAddr  string `mapstructure:"read_addr"`
	WriteAddr string `mapstructure:"write_addr"`
	Namespace string `mapstructure:"namespace"`
}

// AppConfig holds the application configuration.
type AppConfig struct {
	Mode               string `mapstructure:"mode"`
	Port               int    `mapstructure:"port"`
	Name               string `mapstructure:"name"`
	Version            string `mapstructure:"version"`
	TimeZone           string `mapstructure:"time_zone"`
	*LogConfig         `mapstructure:"log"`
	*MongodbConfig     `mapstructure:"mongodb"`
	*KetoConfig        `mapstructure:"keto"`
	*WorkerConfig      `mapstructure:"worker"`
	*RabbitMQConfig    `mapstructure:"rabbitmq"`
	*JwtConfig         `mapstructure:"jwt"`
	*RedisConfig       `mapstructure:"redis"`
	*RateLimiterConfig `mapstructure:"rate_limiter"`
}

// JwtConfig holds the JWT configuration.
type JwtConfig struct {
	Algorithm      string `mapstructure:"algorithm"`
	Secret         string `mapstructure:"secret"`
	PrivateKeyFile string `mapstructure:"private_key_file"`
	PublicKeyFile  string `mapstructure:"public_key_file"`
	ExpireMinutes  int    `mapstructure:"expire_minutes"`
}

// MongodbConfig holds the MongoDB configuration.
type MongodbConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

// LogConfig holds the logger configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// WorkerConfig holds all background worker configurations.
type WorkerConfig struct {
	Outbox      OutboxWorkerConfig `mapstructure:"outbox"`
	StaleClaims StaleClaimsConfig  `mapstructure:"stale_claims"`
}

// StaleClaimsConfig holds the configuration for the stale claim releaser.
type StaleClaimsConfig struct {
	IntervalSeconds   int `mapstructure:"interval_seconds"`
	StaleAfterSeconds int `mapstructure:"stale_after_seconds"`
}

// OutboxWorkerConfig holds the configuration for the outbox polling worker.
type OutboxWorkerConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
	BatchSize       int `mapstructure:"batch_size"`
}

// RabbitMQConfig holds the RabbitMQ configuration.
type RabbitMQConfig struct {
	Host                    string `mapstructure:"host"`
	Port                    int    `mapstructure:"port"`
	User                    string `mapstructure:"user"`
	Password                string `mapstructure:"password"`
	NotificationEventsTopic string `mapstructure:"notification_events_topic"`
}

// RedisConfig holds the Redis client configuration.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimiterPolicy defines the limit and interval for a policy.
type RateLimiterPolicy struct {
	Interval string `mapstructure:"interval"` // e.g., "1s", "1m", "1h"
	Limit    int    `mapstructure:"limit"`
}

// RateLimiterConfig holds all rate limiting policies.
type RateLimiterConfig struct {
	Default  RateLimiterPolicy            `mapstructure:"default"`
	Policies map[string]RateLimiterPolicy `mapstructure:"policies"`
}

// NewConfig loads the application configuration from a file.
func NewConfig(confFile string) (*AppConfig, error) {
	// Load .env if present, mainly for local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(confFile)

	// `mongodb.host` overridable as MONGODB_HOST.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	loc, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}
	time.Local = loc

	return &conf, nil
}
