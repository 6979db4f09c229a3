// internal/delivery/telegram/app/bot/handlers/buttons/scan_now/handler.go
package scan_now

import (
	"context"

	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/base"
	"entry-zone-bot/pkg/logger"
)

// ScanService ручной запуск цикла
type ScanService interface {
	RunManual(ctx context.Context, chatID int64) error
}

type scanNowHandler struct {
	*base.BaseHandler
	service ScanService
}

// NewHandler кнопка "👀 VER AHORA"
func NewHandler(service ScanService) handlers.Handler {
	return &scanNowHandler{
		BaseHandler: &base.BaseHandler{
			Name:    "scan_now_button_handler",
			Command: constants.ButtonTexts.ScanNow,
			Type:    handlers.TypeButton,
		},
		service: service,
	}
}

// Execute отвечает "Escaneando..." и запускает цикл после отправки ответа
func (h *scanNowHandler) Execute(_ context.Context, params handlers.HandlerParams) (handlers.HandlerResult, error) {
	chatID := params.ChatID
	return handlers.HandlerResult{
		Message: constants.MsgScanning,
		After: func(ctx context.Context) {
			if err := h.service.RunManual(ctx, chatID); err != nil {
				logger.Warn("⚠️ Escaneo manual chat %d: %v", chatID, err)
			}
		},
	}, nil
}
