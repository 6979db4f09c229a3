// internal/delivery/telegram/app/bot/handlers/router/interface.go
package router

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
)

// Router интерфейс маршрутизатора хэндлеров
type Router interface {
	RegisterHandler(handler handlers.Handler)                 // по GetCommand()/GetType()
	RegisterButton(text string, handler handlers.Handler)     // дополнительный текст кнопки
	Handle(ctx context.Context, text string, params handlers.HandlerParams) (handlers.HandlerResult, error)
	GetHandler(text string) (handlers.Handler, bool)
	GetCommands() []string
}
