package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "") // восстановит исходное значение после теста
		require.NoError(t, os.Unsetenv(key))
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TG_API_KEY", "123456:ABCDEF")
	t.Setenv("TG_CHAT_ID", "-1001234567890")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, int64(-1001234567890), cfg.Telegram.ChatID)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIURL)
	assert.Equal(t, "*datos.csv", cfg.CSV.Pattern)
	assert.Equal(t, "datos_normalizados", cfg.CSV.Exclude)
	assert.Equal(t, []string{"pendiente", "pending"}, cfg.CSV.PendingStatuses)
	assert.Equal(t, []string{"USDT", "USD", "BUSD"}, cfg.Symbols.QuoteSuffixes)
	assert.Equal(t, 20*time.Second, cfg.Market.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Schedule.DayInterval)
	assert.Equal(t, 60*time.Minute, cfg.Schedule.NightInterval)
	assert.Equal(t, time.Second, cfg.Schedule.FirstRunDelay)
	assert.Equal(t, 4000, cfg.Reports.ChunkLimit)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.IsChatAllowed(42))
}

func TestDefaultTimezoneResolves(t *testing.T) {
	setRequired(t)
	unsetEnv(t, "SCHEDULE_TIMEZONE")
	// пустой каталог zoneinfo: зона берется из встроенной базы
	t.Setenv("ZONEINFO", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	policy := cfg.SchedulePolicy()
	assert.Equal(t, "America/Argentina/Buenos_Aires", policy.Location.String())

	noon := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) // 12:00 в Буэнос-Айресе
	assert.Equal(t, 10*time.Minute, policy.Resolve(noon).Interval)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DAY_INTERVAL", "5m")
	t.Setenv("DAY_START_HOUR", "7")
	t.Setenv("TG_ALLOWED_CHAT_IDS", "1,2,-3")
	t.Setenv("QUOTE_SUFFIXES", "USDT,USDC")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Schedule.DayInterval)
	assert.Equal(t, []int64{1, 2, -3}, cfg.Telegram.AllowedChatIDs)
	assert.True(t, cfg.IsChatAllowed(-3))
	assert.False(t, cfg.IsChatAllowed(4))
	assert.Equal(t, []string{"USDT", "USDC"}, cfg.Symbols.QuoteSuffixes)
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddress())

	policy := cfg.SchedulePolicy()
	assert.Equal(t, 7, policy.DayStartHour)
	assert.Equal(t, 5*time.Minute, policy.DayInterval)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TG_API_KEY=from-file\nTG_CHAT_ID=77\nCSV_DIR=/data\n"), 0o600))

	// godotenv не перезаписывает уже заданные переменные
	unsetEnv(t, "TG_API_KEY", "TG_CHAT_ID", "CSV_DIR")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Telegram.BotToken)
	assert.Equal(t, int64(77), cfg.Telegram.ChatID)
	assert.Equal(t, "/data", cfg.CSV.Dir)
}

func TestValidationAggregatesErrors(t *testing.T) {
	t.Setenv("TELEGRAM_ENABLED", "true")
	unsetEnv(t, "TG_API_KEY", "TG_CHAT_ID")
	t.Setenv("DAY_START_HOUR", "20")
	t.Setenv("MESSAGE_CHUNK_LIMIT", "5000")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "TG_API_KEY is required")
	assert.Contains(t, err.Error(), "TG_CHAT_ID is required")
	assert.Contains(t, err.Error(), "day start hour")
	assert.Contains(t, err.Error(), "MESSAGE_CHUNK_LIMIT")
}

func TestTelegramDisabledNeedsNoToken(t *testing.T) {
	t.Setenv("TELEGRAM_ENABLED", "false")
	unsetEnv(t, "TG_API_KEY", "TG_CHAT_ID")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.Telegram.Enabled)
}

func TestDatabaseEnabledRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_ENABLED", "true")
	unsetEnv(t, "DB_USER", "DB_NAME")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER is required")
	assert.Contains(t, err.Error(), "DB_NAME is required")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "bot", Password: "secret", Name: "journal", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=bot password=secret dbname=journal sslmode=disable", cfg.GetPostgresDSN())
}

func TestLogFilePath(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{File: "logs/x.log", ToFile: true}}
	assert.Equal(t, "logs/x.log", cfg.LogFilePath())

	cfg.Logging.ToFile = false
	assert.Empty(t, cfg.LogFilePath())
}
