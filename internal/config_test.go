package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	var config Config

	err := env.Unmarshal(env.EnvSet{"AUTH_SECRET": "a_secret_long_enough"}, &config)

	req.NoError(err)
	req.NoError(config.Validate())
	req.Equal(StoreBadger, config.StoreMode)
	req.Equal(20, config.RecentAvatarLimit)
	req.Nil(config.LimitMessages)
}

func TestConfig_Requires_Secret(t *testing.T) {
	req := require.New(t)
	var config Config

	err := env.Unmarshal(env.EnvSet{}, &config)

	req.Error(err)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{StoreMode: StoreMemory, AuthSecret: "a_secret_long_enough", EventBufferSize: 1, MetricInterval: time.Minute}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown store", func(c *Config) { c.StoreMode = "sqlite" }, true},
		{"zero limit", func(c *Config) { c.LimitMessages = lo.ToPtr(0) }, true},
		{"short secret", func(c *Config) { c.AuthSecret = "short" }, true},
		{"no buffer", func(c *Config) { c.EventBufferSize = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
