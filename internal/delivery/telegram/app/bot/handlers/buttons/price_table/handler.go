// internal/delivery/telegram/app/bot/handlers/buttons/price_table/handler.go
package price_table

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
)

// PriceTableService цены всех отложенных символов
type PriceTableService interface {
	PriceTable(ctx context.Context) string
}

type priceTableHandler struct {
	*base.BaseHandler
	service PriceTableService
}

// NewHandler кнопка "💰 PRECIOS TABLA"
func NewHandler(service PriceTableService) handlers.Handler {
	return &priceTableHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "price_table_button_handler",
			Command: constants.ButtonTexts.PriceTable,
			Type:    handlers.TypeButton,
		},
		service: service,
	}
}

// Execute возвращает таблицу цен
func (h *priceTableHandler) Execute(ctx context.Context, _ handlers.HandlerParams) (handlers.HandlerResult, error) {
	return handlers.HandlerResult{Message: h.service.PriceTable(ctx)}, nil
}
