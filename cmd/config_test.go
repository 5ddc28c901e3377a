package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverPgx, cfg.DBDriver)
	assert.Equal(t, "Asia/Kolkata", cfg.OrderLocation.String())
	assert.True(t, decimal.RequireFromString("0.05").Equal(cfg.BillPolicy.GSTRate))
	assert.True(t, decimal.NewFromInt(20).Equal(cfg.BillPolicy.DeliveryFee))
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Empty(t, cfg.KafkaHost)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.DispatchSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=fooddelivery sslmode=disable", cfg.DSN())
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := parseConfig(envOf(map[string]string{
		"DB_DRIVER":         DriverPQ,
		"ORDER_TIMEZONE":    "UTC",
		"BILL_GST_RATE":     "0.18",
		"DISPATCH_SCHEDULE": "*/10 * * * * *",
		"LOG_LEVEL":         "debug",
		"IDEMPOTENCY_TTL":   "90m",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPQ, cfg.DBDriver)
	assert.Equal(t, time.UTC, cfg.OrderLocation)
	assert.True(t, decimal.RequireFromString("0.18").Equal(cfg.BillPolicy.GSTRate))
	assert.Equal(t, "*/10 * * * * *", cfg.DispatchSchedule)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 90*time.Minute, cfg.IdempotencyTTL)
}

func TestParseConfig_ReportsEveryBadValue(t *testing.T) {
	_, err := parseConfig(envOf(map[string]string{
		"DB_DRIVER":         "mysql",
		"ORDER_TIMEZONE":    "Mars/Olympus",
		"BILL_GST_RATE":     "five percent",
		"BILL_DELIVERY_FEE": "x",
		"IDEMPOTENCY_TTL":   "-1h",
		"DISPATCH_SCHEDULE": "every now and then",
		"LOG_LEVEL":         "loud",
	}))
	require.Error(t, err)
	for _, key := range []string{
		"DB_DRIVER", "ORDER_TIMEZONE", "BILL_GST_RATE", "BILL_DELIVERY_FEE",
		"IDEMPOTENCY_TTL", "DISPATCH_SCHEDULE", "LOG_LEVEL",
	} {
		assert.Contains(t, err.Error(), key)
	}
}

// unset clears key for the test and restores it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfig_EnvWinsOverFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("HTTP_PORT=9090\nDB_NAME=from_file\n"), 0o600))
	unset(t, "DB_NAME")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, "from_file", cfg.DBName)
}

func TestLoadConfig_MissingFileIsFine(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
