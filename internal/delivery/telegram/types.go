// internal/delivery/telegram/types.go
package telegram

import (
	"encoding/json"
	"fmt"
)

// Update - обновление из getUpdates (только нужные поля)
type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message - входящее сообщение
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Date      int64  `json:"date"`
	Text      string `json:"text"`
}

// User - отправитель
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// Chat - чат
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// ReplyKeyboardButton - кнопка reply клавиатуры
type ReplyKeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardMarkup - разметка reply клавиатуры
type ReplyKeyboardMarkup struct {
	Keyboard        [][]ReplyKeyboardButton `json:"keyboard"`
	ResizeKeyboard  bool                    `json:"resize_keyboard,omitempty"`
	OneTimeKeyboard bool                    `json:"one_time_keyboard,omitempty"`
	IsPersistent    bool                    `json:"is_persistent,omitempty"`
}

// BotCommand представляет команду в меню бота
type BotCommand struct {
	Command     string `json:"command"`     // 1-32 символа, без "/"
	Description string `json:"description"` // 1-256 символов
}

// SetMyCommandsParams параметры для установки команд
type SetMyCommandsParams struct {
	Commands []BotCommand `json:"commands"`
}

// ResponseParameters - дополнительные поля ошибки
type ResponseParameters struct {
	RetryAfter int `json:"retry_after,omitempty"`
}

// APIResponse - общий конверт ответа Bot API
type APIResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// APIError - ошибка, которую вернул Bot API (ok=false)
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int // секунды, для 429
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram API error %d in %s: %s", e.Code, e.Method, e.Description)
}

// IsTooManyRequests - ошибка 429
func (e *APIError) IsTooManyRequests() bool {
	return e.Code == 429
}
