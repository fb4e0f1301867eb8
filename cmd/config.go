package cmd

import (
	"fmt"
	"time"
)

// DefaultStatusUpdateGracePeriod applies when STATUS_UPDATE_GRACE_PERIOD is unset.
const DefaultStatusUpdateGracePeriod = 5 * time.Minute

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string

	// StatusUpdateGracePeriod is how long a forward transition stays revertible.
	StatusUpdateGracePeriod time.Duration
	GraceFinalizerSchedule  string
}

// ParseStatusUpdateGracePeriod reads a Go duration such as "90s" or "5m".
// An empty value yields DefaultStatusUpdateGracePeriod.
func ParseStatusUpdateGracePeriod(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultStatusUpdateGracePeriod, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("STATUS_UPDATE_GRACE_PERIOD: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("STATUS_UPDATE_GRACE_PERIOD: %s is not positive", d)
	}
	return d, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
