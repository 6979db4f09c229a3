// internal/delivery/telegram/app/bot/handlers/buttons/toggle/handler.go
package toggle

import (
	"context"
	"fmt"

	"entry-zone-bot/internal/delivery/telegram/app/bot/buttons"
	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/commands/start"
)

// ToggleService включение/пауза автосканирования
type ToggleService interface {
	start.StatusService
	SetActive(ctx context.Context, chatID int64, active bool) string
}

type toggleHandler struct {
	*base.BaseHandler
	active  bool
	service ToggleService
	menu    *formatters.MenuFormatter
	buttons *buttons.ButtonBuilder
}

// NewActivateHandler кнопка "🟢 ACTIVAR BOT"
func NewActivateHandler(service ToggleService, menu *formatters.MenuFormatter, builder *buttons.ButtonBuilder) handlers.Handler {
	return newToggleHandler("activate_button_handler", constants.ButtonTexts.Activate, true, service, menu, builder)
}

// NewPauseHandler кнопка "🔴 PAUSAR BOT"
func NewPauseHandler(service ToggleService, menu *formatters.MenuFormatter, builder *buttons.ButtonBuilder) handlers.Handler {
	return newToggleHandler("pause_button_handler", constants.ButtonTexts.Pause, false, service, menu, builder)
}

func newToggleHandler(name, text string, active bool, service ToggleService, menu *formatters.MenuFormatter, builder *buttons.ButtonBuilder) *toggleHandler {
	return &toggleHandler{
		BaseHandler: &base.BaseHandler{
			Name:    name,
			Command: text,
			Type:    handlers.TypeButton,
		},
		active:  active,
		service: service,
		menu:    menu,
		buttons: builder,
	}
}

// Execute меняет состояние, перерисовывает меню и сообщает итог
func (h *toggleHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	status := h.service.SetActive(ctx, params.ChatID, h.active)

	message, keyboard := start.RenderMenu(h.service, h.menu, h.buttons)

	followUp := constants.MsgPaused
	if h.active {
		followUp = fmt.Sprintf(constants.MsgActivated, status)
	}

	return handlers.HandlerResult{
		Message:  message,
		Keyboard: keyboard,
		FollowUp: followUp,
	}, nil
}
