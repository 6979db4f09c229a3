// internal/delivery/telegram/app/bot/handlers/commands/precio/handler.go
package precio

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// PriceService быстрый запрос цены
type PriceService interface {
	PriceCheck(ctx context.Context, symbol string) string
}

// precioCommandHandler обработчик "/precio SYM"
type precioCommandHandler struct {
	*base.BaseHandler
	service PriceService
}

// NewHandler создает обработчик команды /precio
func NewHandler(service PriceService) handlers.Handler {
	return &precioCommandHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "precio_command_handler",
			Command: constants.CommandPrecio,
			Type:    handlers.TypeCommand,
		},
		service: service,
	}
}

// Execute берет первый аргумент; без аргумента сервис возвращает подсказку
func (h *precioCommandHandler) Execute(ctx context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	symbol := ""
	if len(params.Args) > 0 {
		symbol = params.Args[0]
	}
	return handlers.HandlerResult{Message: h.service.PriceCheck(ctx, symbol)}, nil
}
