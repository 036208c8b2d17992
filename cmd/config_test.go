package cmd

import (
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "CHANGE_FEED", "RECIPIENT_SCOPE", "DISPATCH_TIMEOUT", "KAFKA_HOST", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ChangeFeedInProcess, cfg.ChangeFeed)
	assert.Equal(t, 30*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, commands.DefaultMaxInFlight, cfg.MaxInFlight)
	assert.False(t, cfg.PushConfigured())
	assert.Equal(t, commands.ScopeBroadcast, cfg.DispatchSettings().Scope)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("CHANGE_FEED", "Kafka")
	t.Setenv("KAFKA_HOST", "k1:9092, k2:9092")
	t.Setenv("RECIPIENT_SCOPE", "owner")
	t.Setenv("DISPATCH_TIMEOUT", "5s")
	t.Setenv("FCM_PROJECT_ID", "demo")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ChangeFeedKafka, cfg.ChangeFeed)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, commands.ScopeOwner, cfg.DispatchSettings().Scope)
	assert.Equal(t, 5*time.Second, cfg.DispatchTimeout)
	assert.True(t, cfg.PushConfigured())
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_ParseErrors(t *testing.T) {
	t.Setenv("DISPATCH_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "zero")

	_, err := LoadConfig()

	require.ErrorContains(t, err, "DISPATCH_TIMEOUT")
	require.ErrorContains(t, err, "REDIS_DB")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		HTTPPort:        "8080",
		DBHost:          "localhost",
		DBName:          "orderflow",
		ChangeFeed:      ChangeFeedInProcess,
		RecipientScope:  "broadcast",
		MaxInFlight:     10,
		DispatchTimeout: time.Second,
		TokenRetention:  time.Hour,
		LogLevel:        "info",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown feed", func(c *Config) { c.ChangeFeed = "sqs" }, "CHANGE_FEED"},
		{"kafka without host", func(c *Config) { c.ChangeFeed = ChangeFeedKafka }, "KAFKA_HOST"},
		{"bad scope", func(c *Config) { c.RecipientScope = "everyone" }, "RECIPIENT_SCOPE"},
		{"zero timeout", func(c *Config) { c.DispatchTimeout = 0 }, "DISPATCH_TIMEOUT"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
