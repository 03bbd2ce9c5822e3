package internal

import (
	"fmt"
	"time"
)

const (
	StoreBadger = "badger"
	StoreMemory = "memory"
)

type Config struct {
	LogLevel            string        `env:"LOG_LEVEL,default=INFO"`
	StoreMode           string        `env:"STORE_MODE,default=badger"`
	BadgerChatFilepath  string        `env:"BADGER_CHAT_FILEPATH,default=./data/chat"`
	BadgerLocalFilepath string        `env:"BADGER_LOCAL_FILEPATH,default=./data/local"`
	LimitMessages       *int          `env:"LIMIT_MESSAGES"`
	RecentAvatarLimit   int           `env:"RECENT_AVATAR_LIMIT,default=20"`
	SessionRetryDelay   time.Duration `env:"SESSION_RETRY_DELAY,default=5s"`
	SessionMaxAttempts  int           `env:"SESSION_MAX_ATTEMPTS,default=0"`
	AuthTokenDuration   time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	AuthSecret          string        `env:"AUTH_SECRET,required=true"`
	EventBufferSize     int           `env:"EVENT_BUFFER_SIZE,default=256"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	MetricInterval      time.Duration `env:"METRIC_INTERVAL,default=1m"`
}

// Validate rejects combinations the environment parser cannot express.
func (c Config) Validate() error {
	if c.StoreMode != StoreBadger && c.StoreMode != StoreMemory {
		return fmt.Errorf("STORE_MODE must be %q or %q, got %q", StoreBadger, StoreMemory, c.StoreMode)
	}
	if c.LimitMessages != nil && *c.LimitMessages <= 0 {
		return fmt.Errorf("LIMIT_MESSAGES must be positive, got %d", *c.LimitMessages)
	}
	if len(c.AuthSecret) < 16 {
		return fmt.Errorf("AUTH_SECRET must be at least 16 characters")
	}
	if c.EventBufferSize <= 0 {
		return fmt.Errorf("EVENT_BUFFER_SIZE must be positive, got %d", c.EventBufferSize)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("METRIC_INTERVAL must be positive, got %s", c.MetricInterval)
	}
	return nil
}
