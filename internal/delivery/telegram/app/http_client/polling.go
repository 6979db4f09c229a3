// internal/delivery/telegram/app/http_client/polling.go
package http_client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
)

// PollingClient клиент для long-polling запросов с увеличенным таймаутом
type PollingClient struct {
	client *TelegramClient
}

// NewPollingClient создает новый клиент для polling.
// HTTP-таймаут больше, чем timeout long-poll, иначе запрос обрывается раньше ответа.
func NewPollingClient(apiURL, token string, pollTimeout time.Duration) *PollingClient {
	return &PollingClient{
		client: NewTelegramClient(apiURL, token, pollTimeout+5*time.Second),
	}
}

type getUpdatesParams struct {
	Offset         int      `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

// GetUpdates получает обновления начиная с offset
func (c *PollingClient) GetUpdates(ctx context.Context, offset int, timeout int) ([]telegram.Update, error) {
	raw, err := c.client.Call(ctx, "getUpdates", getUpdatesParams{
		Offset:         offset,
		Timeout:        timeout,
		AllowedUpdates: []string{"message"},
	})
	if err != nil {
		return nil, err
	}

	var updates []telegram.Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}
