// internal/delivery/telegram/app/bot/handlers/types.go
package handlers

import "context"

// HandlerType тип хэндлера
type HandlerType string

const (
	TypeCommand HandlerType = "command" // "/start", "/precio BTC"
	TypeButton  HandlerType = "button"  // точный текст кнопки меню
)

// Handler интерфейс для всех хэндлеров
type Handler interface {
	Execute(ctx context.Context, params HandlerParams) (HandlerResult, error)
	GetName() string
	GetCommand() string // команда без "/" или текст кнопки
	GetType() HandlerType
}

// HandlerParams базовые параметры для всех хэндлеров
type HandlerParams struct {
	ChatID   int64
	UserID   int64
	Text     string   // текст сообщения целиком
	Args     []string // аргументы команды
	UpdateID int
}

// HandlerResult базовый результат хэндлера
type HandlerResult struct {
	Message  string
	Keyboard interface{}
	// FollowUp отправляется отдельным сообщением после Message
	FollowUp string
	// After выполняется в фоне после отправки ответов
	After func(ctx context.Context)
}
