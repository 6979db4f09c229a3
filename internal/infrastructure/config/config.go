// /internal/infrastructure/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // база часовых поясов для образов без zoneinfo

	"entry-zone-bot/internal/core/domain/schedule"
	"entry-zone-bot/pkg/logger"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ============================================
// TELEGRAM
// ============================================

// TelegramConfig - настройки бота
type TelegramConfig struct {
	Enabled        bool          `env:"TELEGRAM_ENABLED" envDefault:"true"`
	BotToken       string        `env:"TG_API_KEY"`
	ChatID         int64         `env:"TG_CHAT_ID"`
	AllowedChatIDs []int64       `env:"TG_ALLOWED_CHAT_IDS" envSeparator:","`
	TestMode       bool          `env:"TELEGRAM_TEST_MODE" envDefault:"false"`
	APIURL         string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	PollingTimeout int           `env:"POLLING_TIMEOUT" envDefault:"30"` // секунды long-poll
	RetryInterval  time.Duration `env:"POLLING_RETRY_INTERVAL" envDefault:"5s"`
}

// ============================================
// ИСТОЧНИК СТРОК (CSV)
// ============================================

// CSVConfig - поиск и разбор CSV файлов
type CSVConfig struct {
	Dir             string   `env:"CSV_DIR" envDefault:"."`
	Pattern         string   `env:"CSV_PATTERN" envDefault:"*datos.csv"`
	Exclude         string   `env:"CSV_EXCLUDE" envDefault:"datos_normalizados"`
	ColumnsFile     string   `env:"CSV_COLUMNS_FILE"`
	PendingStatuses []string `env:"PENDING_STATUSES" envSeparator:"," envDefault:"pendiente,pending"`
}

// SymbolsConfig - нормализация символов
type SymbolsConfig struct {
	QuoteSuffixes      []string `env:"QUOTE_SUFFIXES" envSeparator:"," envDefault:"USDT,USD,BUSD"`
	DefaultQuoteSuffix string   `env:"DEFAULT_QUOTE_SUFFIX" envDefault:"USDT"`
}

// ============================================
// РЫНОЧНЫЕ ДАННЫЕ
// ============================================

// MarketConfig - Binance USDT-M futures
type MarketConfig struct {
	BinanceFuturesURL string        `env:"BINANCE_FUTURES_URL" envDefault:"https://fapi.binance.com"`
	Timeout           time.Duration `env:"MARKET_TIMEOUT" envDefault:"20s"`
	StreamEnabled     bool          `env:"MARKET_STREAM_ENABLED" envDefault:"false"`
	StreamURL         string        `env:"MARKET_STREAM_URL" envDefault:"wss://fstream.binance.com/ws/!ticker@arr"`
	StreamMaxAge      time.Duration `env:"MARKET_STREAM_MAX_AGE" envDefault:"30s"`
}

// ============================================
// РАСПИСАНИЕ
// ============================================

// ScheduleConfig - дневной/ночной режим
type ScheduleConfig struct {
	Timezone            string        `env:"SCHEDULE_TIMEZONE" envDefault:"America/Argentina/Buenos_Aires"`
	DayStartHour        int           `env:"DAY_START_HOUR" envDefault:"5"`
	DayEndHour          int           `env:"DAY_END_HOUR" envDefault:"18"`
	DayInterval         time.Duration `env:"DAY_INTERVAL" envDefault:"10m"`
	NightInterval       time.Duration `env:"NIGHT_INTERVAL" envDefault:"60m"`
	RescheduleTolerance time.Duration `env:"RESCHEDULE_TOLERANCE" envDefault:"1s"`
	FirstRunDelay       time.Duration `env:"FIRST_RUN_DELAY" envDefault:"1s"`
	CycleTimeout        time.Duration `env:"CYCLE_TIMEOUT" envDefault:"2m"`
}

// ReportsConfig - отчеты
type ReportsConfig struct {
	ChunkLimit int `env:"MESSAGE_CHUNK_LIMIT" envDefault:"4000"`
}

// ============================================
// ХРАНИЛИЩА
// ============================================

// RedisConfig конфигурация Redis
type RedisConfig struct {
	Enabled     bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Host        string        `env:"REDIS_HOST" envDefault:"localhost"` // localhost
	Port        int           `env:"REDIS_PORT" envDefault:"6379"`      // 6379
	Password    string        `env:"REDIS_PASSWORD"`                    // пустой или пароль
	DB          int           `env:"REDIS_DB" envDefault:"0"`           // 0
	PoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	KeyPrefix   string        `env:"REDIS_KEY_PREFIX" envDefault:"entrybot:"`
}

// DatabaseConfig - конфигурация базы данных (журнал сканирований)
type DatabaseConfig struct {
	Enabled      bool   `env:"DB_ENABLED" envDefault:"false"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         int    `env:"DB_PORT" envDefault:"5432"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASSWORD"`
	Name         string `env:"DB_NAME"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

// LoggingConfig - логирование
type LoggingConfig struct {
	Level     string `env:"LOG_LEVEL" envDefault:"info"`
	File      string `env:"LOG_FILE" envDefault:"logs/entry_bot.log"`
	ToFile    bool   `env:"LOG_TO_FILE" envDefault:"true"`
	DebugMode bool   `env:"DEBUG_MODE" envDefault:"false"`
}

// ============================================
// ОСНОВНАЯ КОНФИГУРАЦИЯ ПРИЛОЖЕНИЯ
// ============================================

// Config - основная структура конфигурации
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	Version     string `env:"VERSION" envDefault:"1.0.0"`

	Telegram TelegramConfig
	CSV      CSVConfig
	Symbols  SymbolsConfig
	Market   MarketConfig
	Schedule ScheduleConfig
	Reports  ReportsConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// LoadConfig читает .env (если есть) и переменные окружения
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			fmt.Printf("⚠️  Config file %s not found, using environment variables\n", path)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalidConfig - ошибка валидации конфигурации
var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) validate() error {
	var validationErrors []string

	// Проверка Telegram если включен
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			validationErrors = append(validationErrors, "TG_API_KEY is required when Telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			validationErrors = append(validationErrors, "TG_CHAT_ID is required when Telegram is enabled")
		}
	}
	if c.Telegram.PollingTimeout < 0 {
		validationErrors = append(validationErrors, "POLLING_TIMEOUT must not be negative")
	}

	if strings.TrimSpace(c.CSV.Pattern) == "" {
		validationErrors = append(validationErrors, "CSV_PATTERN is required")
	}

	if c.Market.Timeout <= 0 {
		validationErrors = append(validationErrors, "MARKET_TIMEOUT must be positive")
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("SCHEDULE_TIMEZONE %q: %v", c.Schedule.Timezone, err))
	} else if err := c.SchedulePolicy().Validate(); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if c.Reports.ChunkLimit <= 0 || c.Reports.ChunkLimit > 4096 {
		validationErrors = append(validationErrors, "MESSAGE_CHUNK_LIMIT must be in 1..4096")
	}

	// Проверка настроек базы данных
	if c.Database.Enabled {
		if c.Database.Host == "" {
			validationErrors = append(validationErrors, "DB_HOST is required")
		}
		if c.Database.Port <= 0 {
			validationErrors = append(validationErrors, "DB_PORT must be positive")
		}
		if c.Database.User == "" {
			validationErrors = append(validationErrors, "DB_USER is required")
		}
		if c.Database.Name == "" {
			validationErrors = append(validationErrors, "DB_NAME is required")
		}
	}

	if c.Redis.Enabled && c.Redis.Port <= 0 {
		validationErrors = append(validationErrors, "REDIS_PORT must be positive")
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(validationErrors, "; "))
	}

	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	return c.validate()
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// SchedulePolicy собирает политику расписания
func (c *Config) SchedulePolicy() schedule.Policy {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return schedule.Policy{
		Location:      loc,
		DayStartHour:  c.Schedule.DayStartHour,
		DayEndHour:    c.Schedule.DayEndHour,
		DayInterval:   c.Schedule.DayInterval,
		NightInterval: c.Schedule.NightInterval,
	}
}

// IsChatAllowed - пустой список разрешает все чаты
func (c *Config) IsChatAllowed(chatID int64) bool {
	if len(c.Telegram.AllowedChatIDs) == 0 {
		return true
	}
	for _, id := range c.Telegram.AllowedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

// GetPostgresDSN возвращает DSN для подключения к PostgreSQL
func (c *Config) GetPostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddress возвращает адрес Redis
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// LogFilePath - путь файла логов или "" если запись в файл выключена
func (c *Config) LogFilePath() string {
	if !c.Logging.ToFile {
		return ""
	}
	return c.Logging.File
}

// IsDev - окружение разработки
func (c *Config) IsDev() bool {
	environment := strings.ToLower(c.Environment)
	return environment == "dev" || environment == "development"
}

// PrintSummary выводит основные настройки
func (c *Config) PrintSummary() {
	logger.Info("📋 Конфигурация приложения:")
	logger.Info("   • Окружение: %s (v%s)", c.Environment, c.Version)
	logger.Info("   • Уровень логирования: %s", c.Logging.Level)
	logger.Info("   • Telegram включен: %v (test mode: %v)", c.Telegram.Enabled, c.Telegram.TestMode)
	if c.Telegram.Enabled {
		logger.Info("   • Telegram Token: %s", maskToken(c.Telegram.BotToken))
		logger.Info("   • Telegram Chat ID: %d", c.Telegram.ChatID)
	}
	logger.Info("   • CSV: %s/%s (без %q)", c.CSV.Dir, c.CSV.Pattern, c.CSV.Exclude)
	logger.Info("   • Binance: %s (timeout %v, stream: %v)", c.Market.BinanceFuturesURL, c.Market.Timeout, c.Market.StreamEnabled)
	logger.Info("   • Расписание: %s, день %02d:00-%02d:00 каждые %v, ночью каждые %v",
		c.Schedule.Timezone, c.Schedule.DayStartHour, c.Schedule.DayEndHour,
		c.Schedule.DayInterval, c.Schedule.NightInterval)
	if c.Redis.Enabled {
		logger.Info("   • Redis: %s (DB: %d, Pool: %d)", c.GetRedisAddress(), c.Redis.DB, c.Redis.PoolSize)
	}
	if c.Database.Enabled {
		logger.Info("   • PostgreSQL: %s:%d/%s", c.Database.Host, c.Database.Port, c.Database.Name)
	}
}

func maskToken(token string) string {
	if len(token) > 20 {
		return token[:10] + "..." + token[len(token)-10:]
	}
	if token == "" {
		return "(empty)"
	}
	return "***"
}
