// internal/delivery/telegram/app/bot/message_sender/sender.go
package message_sender

import (
	"context"
	"encoding/json"
	"time"

	"entry-zone-bot/pkg/logger"
)

// MessageSender интерфейс для отправки сообщений
type MessageSender interface {
	// SendTextMessage - ответы и меню (Markdown, опциональная клавиатура)
	SendTextMessage(chatID int64, text string, keyboard interface{}) error
	// SendReportMessage - страницы отчетов
	SendReportMessage(chatID int64, text string, disablePreview bool) error

	SetTestMode(enabled bool)
	IsTestMode() bool
}

// APIClient вызов метода Bot API
type APIClient interface {
	Call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error)
}

// Options параметры отправителя
type Options struct {
	Enabled        bool
	TestMode       bool
	MinInterval    time.Duration // пауза между сообщениями
	RequestTimeout time.Duration
	MaxRetryWait   time.Duration // потолок ожидания по retry_after
}

// MessageSenderImpl реализация MessageSender
type MessageSenderImpl struct {
	client       APIClient
	rateLimiter  *RateLimiter
	enabled      bool
	testMode     bool
	timeout      time.Duration
	maxRetryWait time.Duration
	sleep        func(time.Duration)
}

// NewMessageSender создает новый MessageSender
func NewMessageSender(client APIClient, opts Options) *MessageSenderImpl {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.MaxRetryWait <= 0 {
		opts.MaxRetryWait = time.Minute
	}

	return &MessageSenderImpl{
		client:       client,
		rateLimiter:  NewRateLimiter(opts.MinInterval),
		enabled:      opts.Enabled,
		testMode:     opts.TestMode,
		timeout:      opts.RequestTimeout,
		maxRetryWait: opts.MaxRetryWait,
		sleep:        time.Sleep,
	}
}

// SendTextMessage отправляет текстовое сообщение
func (ms *MessageSenderImpl) SendTextMessage(chatID int64, text string, keyboard interface{}) error {
	request := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if keyboard != nil {
		request["reply_markup"] = keyboard
	}
	return ms.send(chatID, "text", request)
}

// SendReportMessage отправляет страницу отчета
func (ms *MessageSenderImpl) SendReportMessage(chatID int64, text string, disablePreview bool) error {
	request := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if disablePreview {
		request["disable_web_page_preview"] = true
	}
	return ms.send(chatID, "report", request)
}

// SetTestMode включает/выключает тестовый режим
func (ms *MessageSenderImpl) SetTestMode(enabled bool) {
	ms.testMode = enabled
}

// IsTestMode возвращает статус тестового режима
func (ms *MessageSenderImpl) IsTestMode() bool {
	return ms.testMode
}

func (ms *MessageSenderImpl) send(chatID int64, msgType string, request map[string]interface{}) error {
	if !ms.enabled {
		logger.Debug("⚠️ Telegram отключен, пропуск отправки сообщения")
		return nil
	}

	if ms.testMode {
		text, _ := request["text"].(string)
		logger.Info("[TEST] Send %s to %d: %s", msgType, chatID, preview(text, 50))
		return nil
	}

	ms.rateLimiter.Wait()

	if err := ms.sendTelegramRequest("sendMessage", request); err != nil {
		logger.Error("❌ Error Telegram (%s): %v", msgType, err)
		return err
	}
	return nil
}
