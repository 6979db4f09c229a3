// application/bootstrap/builder.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entry-zone-bot/application/scheduler"
	"entry-zone-bot/application/services/scanner"
	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/scans"
	"entry-zone-bot/internal/core/domain/schedule"
	"entry-zone-bot/internal/core/domain/setups"
	"entry-zone-bot/internal/delivery/telegram/app/bot"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/message_sender"
	"entry-zone-bot/internal/delivery/telegram/app/http_client"
	"entry-zone-bot/internal/infrastructure/api/exchanges/binance"
	"entry-zone-bot/internal/infrastructure/api/exchanges/binance/ws"
	"entry-zone-bot/internal/infrastructure/cache/redis"
	"entry-zone-bot/internal/infrastructure/config"
	"entry-zone-bot/internal/infrastructure/persistence/csv_source"
	"entry-zone-bot/internal/infrastructure/persistence/postgres"
	"entry-zone-bot/internal/infrastructure/persistence/postgres/repository/scan_journal"
	"entry-zone-bot/pkg/logger"
)

// AppBuilder строит приложение
type AppBuilder struct {
	config   *config.Config
	testMode bool
}

// NewAppBuilder создает построитель
func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithConfig задает конфигурацию
func (b *AppBuilder) WithConfig(cfg *config.Config) *AppBuilder {
	b.config = cfg
	return b
}

// WithTestMode: сообщения только в лог, без приветствия при старте
func (b *AppBuilder) WithTestMode(testMode bool) *AppBuilder {
	b.testMode = testMode
	return b
}

// Build подключает хранилища и собирает компоненты.
// Redis и PostgreSQL необязательны: при ошибке подключения бот работает без них.
func (b *AppBuilder) Build(ctx context.Context) (*Application, error) {
	if b.config == nil {
		return nil, errors.New("bootstrap: config is required")
	}
	cfg := b.config
	testMode := b.testMode || cfg.Telegram.TestMode

	app := &Application{
		config:   cfg,
		testMode: testMode,
		chatID:   cfg.Telegram.ChatID,
	}

	// 1. Хранилище флага активности
	var store schedule.Store = schedule.NewMemoryStore()
	if cfg.Redis.Enabled {
		redisSvc := redis.NewRedisService(cfg.Redis)
		if err := redisSvc.Start(ctx); err != nil {
			logger.Warn("⚠️ Redis недоступен, состояние только в памяти: %v", err)
		} else {
			app.redis = redisSvc
			store = redisSvc.StateStore()
		}
	}
	app.state = schedule.NewState(store)

	// 2. Журнал циклов
	var journal scans.Journal
	if cfg.Database.Enabled {
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Warn("⚠️ PostgreSQL недоступен, журнал сканирований выключен: %v", err)
		} else {
			app.db = db
			journal = scan_journal.NewRepository(db)
		}
	}

	// 3. Источник строк
	normalizer := setups.NewNormalizer(cfg.Symbols.QuoteSuffixes, cfg.Symbols.DefaultQuoteSuffix)
	source, err := csv_source.NewSource(csv_source.Options{
		Dir:             cfg.CSV.Dir,
		Pattern:         cfg.CSV.Pattern,
		Exclude:         cfg.CSV.Exclude,
		ColumnsFile:     cfg.CSV.ColumnsFile,
		PendingStatuses: cfg.CSV.PendingStatuses,
	}, normalizer)
	if err != nil {
		app.closeStores()
		return nil, fmt.Errorf("csv source: %w", err)
	}

	// 4. Котировки
	var quotes market.QuoteProvider = binance.NewBinanceClient(cfg.Market.BinanceFuturesURL, cfg.Market.Timeout)
	if cfg.Market.StreamEnabled {
		app.watcher = ws.NewTickerWatcher(cfg.Market.StreamURL, cfg.Market.StreamMaxAge)
		quotes = binance.NewCachedProvider(quotes, app.watcher)
	}

	// 5. Telegram
	tgClient := http_client.NewTelegramClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken, 30*time.Second)
	sender := message_sender.NewMessageSender(tgClient, message_sender.Options{
		Enabled:  cfg.Telegram.Enabled,
		TestMode: testMode,
	})
	fp := formatters.NewFormatterProvider(cfg.Reports.ChunkLimit)

	// 6. Планировщик и сервис сканирования
	app.scheduler = scheduler.New()
	app.scheduler.SetRunTimeout(cfg.Schedule.CycleTimeout)

	app.scanner, err = scanner.NewService(scanner.Config{
		Policy:        cfg.SchedulePolicy(),
		Tolerance:     cfg.Schedule.RescheduleTolerance,
		FirstRunDelay: cfg.Schedule.FirstRunDelay,
	}, scanner.Dependencies{
		Source:     source,
		Normalizer: normalizer,
		Quotes:     quotes,
		Sender:     sender,
		Scheduler:  app.scheduler,
		State:      app.state,
		Formatters: fp,
		Journal:    journal,
	})
	if err != nil {
		app.closeStores()
		return nil, err
	}

	deps := bot.Dependencies{
		Sender:     sender,
		Scanner:    app.scanner,
		Formatters: fp,
	}
	if cfg.Telegram.Enabled {
		deps.Updates = http_client.NewPollingClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken,
			time.Duration(cfg.Telegram.PollingTimeout)*time.Second)
		deps.Commands = tgClient
	}

	app.bot, err = bot.NewTelegramBot(bot.Options{
		AllowedChatIDs: cfg.Telegram.AllowedChatIDs,
		PollTimeout:    cfg.Telegram.PollingTimeout,
		RetryInterval:  cfg.Telegram.RetryInterval,
		HandlerTimeout: cfg.Schedule.CycleTimeout,
	}, deps)
	if err != nil {
		app.closeStores()
		return nil, err
	}

	logger.Info("🏗️  Приложение собрано (redis: %v, postgres: %v, stream: %v, test: %v)",
		app.redis != nil, app.db != nil, app.watcher != nil, testMode)
	return app, nil
}
