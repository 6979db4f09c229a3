// cmd/bot/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"entry-zone-bot/application/bootstrap"
	"entry-zone-bot/internal/infrastructure/config"
	"entry-zone-bot/pkg/logger"
)

var (
	version   = "1.0.0"
	buildTime = "неизвестно"
)

func main() {
	var (
		cfgPath     string
		logLevel    string
		testMode    bool
		showHelp    bool
		showVersion bool
	)

	flag.StringVar(&cfgPath, "config", ".env", "Путь к .env файлу")
	flag.StringVar(&logLevel, "log-level", "", "Уровень логирования: debug, info, warn, error (переопределяет .env)")
	flag.BoolVar(&testMode, "test", false, "Тестовый режим (сообщения только в лог)")
	flag.BoolVar(&showHelp, "help", false, "Показать справку")
	flag.BoolVar(&showVersion, "version", false, "Показать версию")
	flag.Parse()

	if showVersion {
		printVersion()
		return
	}
	if showHelp {
		printHelp()
		return
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Error("❌ Не удалось загрузить конфигурацию: %v", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if logPath := cfg.LogFilePath(); logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			fmt.Printf("❌ Не удалось создать директорию логов: %v\n", err)
			os.Exit(1)
		}
	}
	if err := logger.InitGlobal(cfg.LogFilePath(), cfg.Logging.Level, cfg.Logging.DebugMode); err != nil {
		fmt.Printf("❌ Не удалось инициализировать файловый логгер: %v. Переход на консольный...\n", err)
		if err := logger.InitGlobal("", cfg.Logging.Level, cfg.Logging.DebugMode); err != nil {
			fmt.Printf("❌ Не удалось инициализировать консольный логгер: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Close()

	if testMode {
		logger.Info("🧪 ЗАПУСК В ТЕСТОВОМ РЕЖИМЕ: сообщения в Telegram не отправляются")
	}
	logger.Info("🚀 Entry Zone Bot v%s (сборка: %s)", version, buildTime)
	cfg.PrintSummary()

	ctx := context.Background()
	app, err := bootstrap.NewAppBuilder().
		WithConfig(cfg).
		WithTestMode(testMode).
		Build(ctx)
	if err != nil {
		logger.Error("❌ Не удалось собрать приложение: %v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("❌ Ошибка запуска приложения: %v", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("🎯 Entry Zone Bot v%s\n", version)
	fmt.Printf("📅 Сборка: %s\n", buildTime)
}

func printHelp() {
	fmt.Println("🎯 Entry Zone Bot")
	fmt.Println("Следит за ценами Binance Futures и сообщает в Telegram, насколько цена близка к зонам входа из CSV")
	fmt.Println()
	fmt.Println("Использование: bot [опции]")
	fmt.Println()
	fmt.Println("Опции:")
	fmt.Println("  --config string    Путь к .env файлу (по умолчанию: .env)")
	fmt.Println("  --log-level string Уровень логирования: debug, info, warn, error")
	fmt.Println("  --test             Тестовый режим (сообщения только в лог)")
	fmt.Println("  --version          Показать версию")
	fmt.Println("  --help             Показать справку")
	fmt.Println()
	fmt.Println("Основные переменные окружения:")
	fmt.Println("  TG_API_KEY         Токен Telegram бота")
	fmt.Println("  TG_CHAT_ID         Чат для автоматических отчетов")
	fmt.Println("  CSV_DIR            Каталог с файлами *datos.csv")
	fmt.Println("  REDIS_ENABLED      Зеркало состояния в Redis")
	fmt.Println("  DB_ENABLED         Журнал сканирований в PostgreSQL")
	fmt.Println("  LOG_LEVEL          Уровень логирования")
}
