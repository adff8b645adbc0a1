package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Views    ViewsConfig    `yaml:"views"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// MaxBodyBytes caps request bodies; 0 disables the cap.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"1048576"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// DSN is only required when the postgres store driver is selected.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// StoreConfig selects the entity store backing the process.
type StoreConfig struct {
	Driver   string `yaml:"driver"    env:"STORE_DRIVER"    env-default:"memory"`
	SeedDemo bool   `yaml:"seed_demo" env:"STORE_SEED_DEMO" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ViewsConfig holds derived-view parameters.
type ViewsConfig struct {
	Timezone          string `yaml:"timezone"            env:"VIEWS_TIMEZONE"            env-default:"UTC"`
	UpcomingLimit     int    `yaml:"upcoming_limit"      env:"VIEWS_UPCOMING_LIMIT"      env-default:"20"`
	RecentJobsLimit   int    `yaml:"recent_jobs_limit"   env:"VIEWS_RECENT_JOBS_LIMIT"   env-default:"8"`
	RevenueWindowDays int    `yaml:"revenue_window_days" env:"VIEWS_REVENUE_WINDOW_DAYS" env-default:"30"`
	TopUsageLimit     int    `yaml:"top_usage_limit"     env:"VIEWS_TOP_USAGE_LIMIT"     env-default:"10"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// RevenueWindow returns the trailing revenue window as a duration.
func (v ViewsConfig) RevenueWindow() time.Duration {
	return time.Duration(v.RevenueWindowDays) * 24 * time.Hour
}

// KafkaConfig holds the mutation event listener settings.
type KafkaConfig struct {
	Enabled    bool   `yaml:"enabled"  env:"KAFKA_ENABLED"  env-default:"false"`
	BrokersRaw string `yaml:"brokers"  env:"KAFKA_BROKERS"`
	Topic      string `yaml:"topic"    env:"KAFKA_TOPIC"    env-default:"fieldservice.mutations"`
	GroupID    string `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"fieldservice-views"`
}

// Brokers splits the comma-separated broker list.
func (k KafkaConfig) Brokers() []string {
	var out []string
	for _, b := range strings.Split(k.BrokersRaw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}
