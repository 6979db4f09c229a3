// application/bootstrap/app.go
package bootstrap

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"entry-zone-bot/application/scheduler"
	"entry-zone-bot/application/services/scanner"
	"entry-zone-bot/internal/core/domain/schedule"
	"entry-zone-bot/internal/delivery/telegram/app/bot"
	"entry-zone-bot/internal/infrastructure/api/exchanges/binance/ws"
	"entry-zone-bot/internal/infrastructure/cache/redis"
	"entry-zone-bot/internal/infrastructure/config"
	"entry-zone-bot/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// Application - собранный бот
type Application struct {
	config   *config.Config
	testMode bool
	chatID   int64

	redis     *redis.RedisService // nil если выключен или недоступен
	db        *sqlx.DB            // nil если выключен или недоступен
	watcher   *ws.TickerWatcher   // nil если поток выключен
	state     *schedule.State
	scheduler *scheduler.Scheduler
	scanner   *scanner.Service
	bot       *bot.TelegramBot

	mu        sync.Mutex
	running   bool
	startTime time.Time
}

// Start запускает компоненты в порядке зависимостей
func (app *Application) Start(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running {
		return errors.New("приложение уже запущено")
	}

	logger.Info("🚀 Запуск приложения...")

	if app.watcher != nil {
		app.watcher.Start()
	}

	// после рестарта бот всегда активен
	if err := app.state.Sync(ctx); err != nil {
		logger.Warn("⚠️ Не удалось записать состояние бота: %v", err)
	}

	status := app.scanner.UpdateSchedule(app.chatID)
	app.scheduler.Start()

	if !app.testMode {
		if err := app.bot.SendStartupMessage(app.chatID, status); err != nil {
			logger.Warn("⚠️ Не удалось отправить сообщение о запуске: %v", err)
		}
	}

	if app.config.Telegram.Enabled {
		if err := app.bot.SetMyCommands(ctx); err != nil {
			logger.Warn("⚠️ %v", err)
		}
		if err := app.bot.StartPolling(); err != nil {
			app.scheduler.Stop()
			if app.watcher != nil {
				app.watcher.Stop()
			}
			return err
		}
	}

	app.running = true
	app.startTime = time.Now()
	logger.Info("✅ Бот запущен: %s", status)
	return nil
}

// Run запускает приложение и ждет SIGINT/SIGTERM или отмены ctx
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		app.Stop()
		return err
	}

	logger.Info("🛑 Нажмите Ctrl+C для остановки")
	<-ctx.Done()
	logger.Info("📶 Получен сигнал завершения")

	app.Stop()
	return nil
}

// Stop останавливает компоненты в обратном порядке
func (app *Application) Stop() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running {
		app.closeStores()
		return
	}

	logger.Info("🛑 Останавливаем приложение...")
	app.bot.Stop()
	app.scheduler.Stop()
	if app.watcher != nil {
		app.watcher.Stop()
	}
	app.closeStores()

	app.running = false
	logger.Info("✅ Приложение остановлено. Время работы: %v", time.Since(app.startTime).Round(time.Second))
}

func (app *Application) closeStores() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			logger.Warn("⚠️ Ошибка закрытия PostgreSQL: %v", err)
		}
		app.db = nil
	}
	if app.redis != nil {
		if err := app.redis.Stop(); err != nil {
			logger.Warn("⚠️ %v", err)
		}
		app.redis = nil
	}
}

// IsRunning запущено ли приложение
func (app *Application) IsRunning() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.running
}

// Scanner сервис сканирования
func (app *Application) Scanner() *scanner.Service {
	return app.scanner
}

// Jobs статус задач планировщика
func (app *Application) Jobs() []scheduler.JobStatus {
	return app.scheduler.Jobs()
}
