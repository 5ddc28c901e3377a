package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

const (
	DriverPgx = "pgx"
	DriverPQ  = "postgres"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBDriver   string

	// OrderLocation is the wall clock used for serving windows.
	OrderLocation *time.Location
	BillPolicy    services.BillPolicy
	UploadDir     string

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr      string
	IdempotencyTTL time.Duration

	// DispatchSchedule is empty when the dispatch job is disabled.
	DispatchSchedule string
	LogLevel         slog.Level
}

// DSN is the libpq style connection string understood by both drivers.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

var defaults = map[string]string{
	"HTTP_PORT":                 "8080",
	"DB_HOST":                   "localhost",
	"DB_PORT":                   "5432",
	"DB_USER":                   "postgres",
	"DB_NAME":                   "fooddelivery",
	"DB_SSLMODE":                "disable",
	"DB_DRIVER":                 DriverPgx,
	"ORDER_TIMEZONE":            "Asia/Kolkata",
	"BILL_GST_RATE":             "0.05",
	"BILL_DELIVERY_FEE":         "20",
	"UPLOAD_DIR":                "uploads/orders",
	"KAFKA_ORDER_CHANGED_TOPIC": "order.changed",
	"IDEMPOTENCY_TTL":           "24h",
	"LOG_LEVEL":                 "info",
}

// LoadConfig reads the optional env files (".env" when none are given) and
// then the process environment. Variables already set in the environment
// are never overridden by a file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return parseConfig(os.Getenv)
}

func parseConfig(getenv func(string) string) (Config, error) {
	get := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return defaults[key]
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT"),
		DBHost:                 get("DB_HOST"),
		DBPort:                 get("DB_PORT"),
		DBUser:                 get("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 get("DB_NAME"),
		DBSslMode:              get("DB_SSLMODE"),
		DBDriver:               get("DB_DRIVER"),
		UploadDir:              get("UPLOAD_DIR"),
		KafkaHost:              get("KAFKA_HOST"),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC"),
		RedisAddr:              get("REDIS_ADDR"),
		DispatchSchedule:       get("DISPATCH_SCHEDULE"),
	}

	var errList []error
	if cfg.DBDriver != DriverPgx && cfg.DBDriver != DriverPQ {
		errList = append(errList, fmt.Errorf("DB_DRIVER: unknown driver %q, want %q or %q", cfg.DBDriver, DriverPgx, DriverPQ))
	}

	location, err := time.LoadLocation(get("ORDER_TIMEZONE"))
	if err != nil {
		errList = append(errList, fmt.Errorf("ORDER_TIMEZONE: %w", err))
	}
	cfg.OrderLocation = location

	gstRate, err := decimal.NewFromString(get("BILL_GST_RATE"))
	if err != nil {
		errList = append(errList, fmt.Errorf("BILL_GST_RATE: %w", err))
	}
	deliveryFee, err := decimal.NewFromString(get("BILL_DELIVERY_FEE"))
	if err != nil {
		errList = append(errList, fmt.Errorf("BILL_DELIVERY_FEE: %w", err))
	}
	cfg.BillPolicy = services.BillPolicy{GSTRate: gstRate, DeliveryFee: deliveryFee}

	ttl, err := time.ParseDuration(get("IDEMPOTENCY_TTL"))
	switch {
	case err != nil:
		errList = append(errList, fmt.Errorf("IDEMPOTENCY_TTL: %w", err))
	case ttl <= 0:
		errList = append(errList, fmt.Errorf("IDEMPOTENCY_TTL: %s is not positive", ttl))
	}
	cfg.IdempotencyTTL = ttl

	if cfg.DispatchSchedule != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err = parser.Parse(cfg.DispatchSchedule); err != nil {
			errList = append(errList, fmt.Errorf("DISPATCH_SCHEDULE: %w", err))
		}
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
