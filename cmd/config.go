package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
)

// Change feed modes: how committed order writes reach the dispatcher.
const (
	ChangeFeedInProcess = "inprocess"
	ChangeFeedKafka     = "kafka"
	ChangeFeedPGListen  = "pglisten"
	ChangeFeedWebhook   = "webhook"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ChangeFeed             string
	KafkaHost              string
	KafkaConsumerGroup     string
	KafkaOrderChangedTopic string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DedupeTTL     time.Duration

	FCMCredentialsFile string
	FCMProjectID       string

	RecipientScope    string
	MaxInFlight       int
	DispatchTimeout   time.Duration
	NotificationIcon  string
	NotificationBadge string
	DeepLink          string

	TokenSweepCron     string
	TokenRetention     time.Duration
	TokenRegisterLimit string

	WebhookSecret   string
	LogLevel        string
	OTELExporterURL string
	Environment     string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var parseErrs []error
	duration := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return d
	}
	integer := func(key string, def int) int {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return n
	}

	cfg := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOr("DB_NAME", "orderflow"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		ChangeFeed:             strings.ToLower(envOr("CHANGE_FEED", ChangeFeedInProcess)),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:     envOr("KAFKA_CONSUMER_GROUP", "orderflow"),
		KafkaOrderChangedTopic: envOr("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       integer("REDIS_DB", 0),
		DedupeTTL:     duration("DEDUPE_TTL", 24*time.Hour),

		FCMCredentialsFile: os.Getenv("FCM_CREDENTIALS_FILE"),
		FCMProjectID:       os.Getenv("FCM_PROJECT_ID"),

		RecipientScope:    envOr("RECIPIENT_SCOPE", string(commands.ScopeBroadcast)),
		MaxInFlight:       integer("DISPATCH_MAX_IN_FLIGHT", commands.DefaultMaxInFlight),
		DispatchTimeout:   duration("DISPATCH_TIMEOUT", 30*time.Second),
		NotificationIcon:  os.Getenv("NOTIFICATION_ICON"),
		NotificationBadge: os.Getenv("NOTIFICATION_BADGE"),
		DeepLink:          os.Getenv("NOTIFICATION_DEEP_LINK"),

		TokenSweepCron:     envOr("TOKEN_SWEEP_CRON", "0 0 3 * * *"),
		TokenRetention:     duration("TOKEN_RETENTION", 90*24*time.Hour),
		TokenRegisterLimit: envOr("TOKEN_REGISTER_RATE", "30-M"),

		WebhookSecret:   os.Getenv("WEBHOOK_SECRET"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		OTELExporterURL: os.Getenv("OTEL_EXPORTER_URL"),
		Environment:     envOr("ENVIRONMENT", "development"),
	}

	return cfg, errors.Join(parseErrs...)
}

// Validate reports every problem at once. Missing push credentials are not
// an error here: the dispatcher reports them per invocation.
func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_HOST and DB_NAME are required"))
	}

	switch c.ChangeFeed {
	case ChangeFeedInProcess, ChangeFeedPGListen, ChangeFeedWebhook:
	case ChangeFeedKafka:
		if c.KafkaHost == "" || c.KafkaOrderChangedTopic == "" {
			problems = append(problems, errors.New("CHANGE_FEED=kafka needs KAFKA_HOST and KAFKA_ORDER_CHANGED_TOPIC"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown CHANGE_FEED %q", c.ChangeFeed))
	}

	if _, err := commands.ParseRecipientScope(c.RecipientScope); err != nil {
		problems = append(problems, fmt.Errorf("RECIPIENT_SCOPE: %w", err))
	}
	if c.MaxInFlight <= 0 {
		problems = append(problems, errors.New("DISPATCH_MAX_IN_FLIGHT must be positive"))
	}
	if c.DispatchTimeout <= 0 {
		problems = append(problems, errors.New("DISPATCH_TIMEOUT must be positive"))
	}
	if c.TokenRetention <= 0 {
		problems = append(problems, errors.New("TOKEN_RETENTION must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) PushConfigured() bool {
	return c.FCMCredentialsFile != "" || c.FCMProjectID != ""
}

func (c Config) DispatchSettings() commands.DispatchSettings {
	scope, _ := commands.ParseRecipientScope(c.RecipientScope)
	return commands.DispatchSettings{
		Scope:       scope,
		MaxInFlight: c.MaxInFlight,
		Icon:        c.NotificationIcon,
		Badge:       c.NotificationBadge,
		DeepLink:    c.DeepLink,
	}
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
