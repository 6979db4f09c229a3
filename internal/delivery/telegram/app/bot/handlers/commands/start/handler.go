// internal/delivery/telegram/app/bot/handlers/commands/start/handler.go
package start

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram"
	"entry-zone-bot/internal/delivery/telegram/app/bot/buttons"
	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// startCommandHandler реализация обработчика команды /start
type startCommandHandler struct {
	*base.BaseHandler
	service StatusService
	menu    *formatters.MenuFormatter
	buttons *buttons.ButtonBuilder
}

// NewHandler создает новый обработчик команды /start
func NewHandler(service StatusService, menu *formatters.MenuFormatter, builder *buttons.ButtonBuilder) handlers.Handler {
	return &startCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "start_command_handler",
			Command: constants.CommandStart,
			Type:    handlers.TypeCommand,
		},
		service: service,
		menu:    menu,
		buttons: builder,
	}
}

// Execute выполняет обработку команды /start
func (h *startCommandHandler) Execute(_ context.Context, _ handlers.HandlerParams) (handlers.HandlerResult, error) {
	message, keyboard := RenderMenu(h.service, h.menu, h.buttons)
	return handlers.HandlerResult{
		Message:  message,
		Keyboard: keyboard,
	}, nil
}

// RenderMenu текст и клавиатура главного меню для текущего состояния
func RenderMenu(service StatusService, menu *formatters.MenuFormatter, builder *buttons.ButtonBuilder) (string, telegram.ReplyKeyboardMarkup) {
	return menu.StartMessage(service.Policy(), service.StatusLabel()),
		builder.CreateMainMenuKeyboard(service.IsActive())
}
