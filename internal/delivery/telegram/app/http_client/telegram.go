// internal/delivery/telegram/app/http_client/telegram.go
package http_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
)

// DefaultAPIURL адрес Bot API
const DefaultAPIURL = "https://api.telegram.org"

// TelegramClient клиент для работы с Telegram API
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string // {api}/bot{token}/
}

// NewTelegramClient создает новый клиент Telegram
func NewTelegramClient(apiURL, token string, timeout time.Duration) *TelegramClient {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(apiURL, "/") + "/bot" + token + "/",
	}
}

// Call выполняет метод Bot API с JSON телом и возвращает поле result.
// Ответ ok=false превращается в *telegram.APIError.
func (c *TelegramClient) Call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var apiResp telegram.APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse %s response (status %d): %w", method, resp.StatusCode, err)
	}

	if !apiResp.OK {
		apiErr := &telegram.APIError{
			Method:      method,
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
		}
		if apiResp.Parameters != nil {
			apiErr.RetryAfter = apiResp.Parameters.RetryAfter
		}
		return nil, apiErr
	}

	return apiResp.Result, nil
}

// SetMyCommands устанавливает меню команд
func (c *TelegramClient) SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error {
	_, err := c.Call(ctx, "setMyCommands", telegram.SetMyCommandsParams{Commands: commands})
	return err
}
