// internal/delivery/telegram/app/bot/message_sender/utils.go
package message_sender

import (
	"context"
	"errors"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
	"entry-zone-bot/pkg/logger"
)

// sendTelegramRequest отправляет запрос; на 429 одно ожидание retry_after и повтор
func (ms *MessageSenderImpl) sendTelegramRequest(method string, request map[string]interface{}) error {
	err := ms.call(method, request)

	var apiErr *telegram.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsTooManyRequests() {
		return err
	}

	wait := time.Duration(apiErr.RetryAfter) * time.Second
	if wait <= 0 {
		wait = time.Second
	}
	if wait > ms.maxRetryWait {
		wait = ms.maxRetryWait
	}
	logger.Warn("⚠️ Telegram API rate limit, waiting %v", wait)
	ms.sleep(wait)

	return ms.call(method, request)
}

func (ms *MessageSenderImpl) call(method string, request map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	_, err := ms.client.Call(ctx, method, request)
	return err
}

// preview обрезает текст для логов по рунам
func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
