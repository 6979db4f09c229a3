// internal/delivery/telegram/app/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
	"entry-zone-bot/internal/delivery/telegram/app/bot/buttons"
	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/price_table"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/scan_now"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/toggle"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/commands/precio"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/router"
	"entry-zone-bot/internal/delivery/telegram/app/bot/message_sender"
	"entry-zone-bot/pkg/logger"
)

// ScannerService все, что хэндлерам нужно от сервиса сканирования
type ScannerService interface {
	toggle.ToggleService
	precio.PriceService
	price_table.PriceTableService
	scan_now.ScanService
}

// UpdatesSource long-polling источник обновлений
type UpdatesSource interface {
	GetUpdates(ctx context.Context, offset int, timeout int) ([]telegram.Update, error)
}

// CommandsSetter установка меню команд
type CommandsSetter interface {
	SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error
}

// Options параметры бота
type Options struct {
	AllowedChatIDs []int64       // пусто - разрешены все
	PollTimeout    int           // секунды long-poll
	RetryInterval  time.Duration // пауза после ошибки getUpdates
	HandlerTimeout time.Duration // предел фоновой задачи хэндлера
}

// Dependencies зависимости для TelegramBot
type Dependencies struct {
	Sender     message_sender.MessageSender
	Updates    UpdatesSource
	Commands   CommandsSetter // может быть nil
	Scanner    ScannerService
	Formatters *formatters.FormatterProvider
}

// TelegramBot - меню, команды и polling
type TelegramBot struct {
	opts       Options
	sender     message_sender.MessageSender
	commands   CommandsSetter
	formatters *formatters.FormatterProvider
	router     router.Router
	allowed    map[int64]struct{}

	pollingHandler *PollingClient

	// фоновые задачи хэндлеров (ручной скан)
	tasksCtx    context.Context
	tasksCancel context.CancelFunc
	tasks       sync.WaitGroup

	startupTime time.Time
}

// NewTelegramBot создает новый экземпляр TelegramBot
func NewTelegramBot(opts Options, deps Dependencies) (*TelegramBot, error) {
	if deps.Sender == nil || deps.Scanner == nil {
		return nil, errors.New("telegram bot: sender and scanner are required")
	}
	if opts.PollTimeout < 0 {
		opts.PollTimeout = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 5 * time.Second
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 5 * time.Minute
	}
	fp := deps.Formatters
	if fp == nil {
		fp = formatters.NewFormatterProvider(formatters.DefaultChunkLimit)
	}

	allowed := make(map[int64]struct{}, len(opts.AllowedChatIDs))
	for _, id := range opts.AllowedChatIDs {
		allowed[id] = struct{}{}
	}

	tasksCtx, tasksCancel := context.WithCancel(context.Background())
	b := &TelegramBot{
		opts:        opts,
		sender:      deps.Sender,
		commands:    deps.Commands,
		formatters:  fp,
		allowed:     allowed,
		tasksCtx:    tasksCtx,
		tasksCancel: tasksCancel,
		startupTime: time.Now(),
	}
	b.router = registerHandlers(deps.Scanner, fp, buttons.NewButtonBuilder())

	if deps.Updates != nil {
		b.pollingHandler = NewPollingClient(b, deps.Updates, opts.PollTimeout, opts.RetryInterval)
	}
	return b, nil
}

// HandleUpdate обрабатывает одно обновление
func (b *TelegramBot) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return nil
	}

	msg := update.Message
	chatID := msg.Chat.ID
	if !b.isChatAllowed(chatID) {
		logger.Debug("Чат %d не в списке разрешенных, пропуск", chatID)
		return nil
	}

	params := handlers.HandlerParams{
		ChatID:   chatID,
		Text:     msg.Text,
		UpdateID: update.UpdateID,
	}
	if msg.From != nil {
		params.UserID = msg.From.ID
	}

	result, err := b.router.Handle(ctx, msg.Text, params)
	if errors.Is(err, router.ErrHandlerNotFound) {
		logger.Debug("Нет хэндлера для %q", msg.Text)
		return nil
	}
	if err != nil {
		return b.sender.SendTextMessage(chatID, fmt.Sprintf(constants.MsgCommandFail, err), nil)
	}

	return b.deliver(chatID, result)
}

// deliver отправляет ответ хэндлера и запускает его фоновую задачу
func (b *TelegramBot) deliver(chatID int64, result handlers.HandlerResult) error {
	if result.Message != "" {
		chunks := formatters.SmartSplit(result.Message, b.formatters.ChunkLimit)
		for i, chunk := range chunks {
			var keyboard interface{}
			if i == 0 && result.Keyboard != nil {
				keyboard = result.Keyboard
			}
			if err := b.sender.SendTextMessage(chatID, chunk, keyboard); err != nil {
				return err
			}
		}
	}

	if result.FollowUp != "" {
		if err := b.sender.SendTextMessage(chatID, result.FollowUp, nil); err != nil {
			return err
		}
	}

	if result.After != nil {
		b.runTask(result.After)
	}
	return nil
}

func (b *TelegramBot) runTask(task func(ctx context.Context)) {
	b.tasks.Add(1)
	go func() {
		defer b.tasks.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("❌ Паника в фоновой задаче хэндлера: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(b.tasksCtx, b.opts.HandlerTimeout)
		defer cancel()
		task(ctx)
	}()
}

func (b *TelegramBot) isChatAllowed(chatID int64) bool {
	if len(b.allowed) == 0 {
		return true
	}
	_, ok := b.allowed[chatID]
	return ok
}

// SendStartupMessage сообщение о перезапуске со статусом расписания
func (b *TelegramBot) SendStartupMessage(chatID int64, status string) error {
	return b.sender.SendTextMessage(chatID, fmt.Sprintf(constants.MsgRestarted, status), nil)
}

// SetMyCommands устанавливает меню команд в Telegram
func (b *TelegramBot) SetMyCommands(ctx context.Context) error {
	if b.commands == nil {
		return nil
	}

	commands := []telegram.BotCommand{
		{Command: constants.CommandStart, Description: constants.CommandDescriptions.Start},
		{Command: constants.CommandHelp, Description: constants.CommandDescriptions.Help},
		{Command: constants.CommandPrecio, Description: constants.CommandDescriptions.Precio},
	}

	if err := b.commands.SetMyCommands(ctx, commands); err != nil {
		return fmt.Errorf("ошибка настройки меню команд: %w", err)
	}

	logger.Info("✅ Меню команд отправлено в Telegram API (%d)", len(commands))
	return nil
}

// StartPolling запускает получение обновлений
func (b *TelegramBot) StartPolling() error {
	if b.pollingHandler == nil {
		return errors.New("polling is not configured")
	}
	return b.pollingHandler.Start()
}

// Stop останавливает polling и ждет фоновые задачи
func (b *TelegramBot) Stop() {
	if b.pollingHandler != nil {
		b.pollingHandler.Stop()
	}
	b.tasksCancel()
	b.tasks.Wait()
	logger.Info("🛑 Telegram бот остановлен (uptime %v)", time.Since(b.startupTime).Round(time.Second))
}

// IsPolling проверяет работает ли polling
func (b *TelegramBot) IsPolling() bool {
	return b.pollingHandler != nil && b.pollingHandler.IsRunning()
}
