// internal/delivery/telegram/app/bot/handlers/commands/help/handler.go
package help

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// helpCommandHandler реализация обработчика команды /help (и кнопки AYUDA)
type helpCommandHandler struct {
	*base.BaseHandler
	menu *formatters.MenuFormatter
}

// NewHandler создает новый обработчик команды /help
func NewHandler(menu *formatters.MenuFormatter) handlers.Handler {
	return &helpCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "help_command_handler",
			Command: constants.CommandHelp,
			Type:    handlers.TypeCommand,
		},
		menu: menu,
	}
}

// Execute выполняет обработку команды /help
func (h *helpCommandHandler) Execute(_ context.Context, _ handlers.HandlerParams) (handlers.HandlerResult, error) {
	return handlers.HandlerResult{Message: h.menu.HelpMessage()}, nil
}
