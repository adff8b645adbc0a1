package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/fieldservice-backend/internal/schedule"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(c.Database); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := c.Views.validate(); err != nil {
		return fmt.Errorf("views: %w", err)
	}

	if err := c.Kafka.validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics: path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (s *StoreConfig) validate(db DatabaseConfig) error {
	switch s.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s driver", DriverPostgres)
		}
		if db.MinConns > db.MaxConns {
			return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", db.MinConns, db.MaxConns)
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", s.Driver, DriverMemory, DriverPostgres)
	}
}

func (v *ViewsConfig) validate() error {
	loc, err := schedule.ParseTimezone(v.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	v.Location = loc

	limits := []struct {
		name  string
		value int
	}{
		{"upcoming_limit", v.UpcomingLimit},
		{"recent_jobs_limit", v.RecentJobsLimit},
		{"revenue_window_days", v.RevenueWindowDays},
		{"top_usage_limit", v.TopUsageLimit},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", l.name, l.value)
		}
	}

	return nil
}

func (k *KafkaConfig) validate() error {
	if !k.Enabled {
		return nil
	}
	if len(k.Brokers()) == 0 {
		return fmt.Errorf("brokers are required when enabled")
	}
	if k.Topic == "" {
		return fmt.Errorf("topic is required when enabled")
	}
	if k.GroupID == "" {
		return fmt.Errorf("group_id is required when enabled")
	}
	return nil
}
