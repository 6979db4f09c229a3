// internal/delivery/telegram/app/bot/init_handlers.go
package bot

import (
	"entry-zone-bot/internal/delivery/telegram/app/bot/buttons"
	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/price_table"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/scan_now"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/buttons/toggle"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/commands/help"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/commands/precio"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/commands/start"
	"entry-zone-bot/internal/delivery/telegram/app/bot/handlers/router"
	"entry-zone-bot/pkg/logger"
)

// registerHandlers регистрирует команды и кнопки меню
func registerHandlers(svc ScannerService, fp *formatters.FormatterProvider, builder *buttons.ButtonBuilder) router.Router {
	r := router.NewRouter()
	menu := fp.MenuFormatter

	// команды
	r.RegisterHandler(start.NewHandler(svc, menu, builder))
	helpHandler := help.NewHandler(menu)
	r.RegisterHandler(helpHandler)
	r.RegisterHandler(precio.NewHandler(svc))

	// кнопки
	r.RegisterHandler(scan_now.NewHandler(svc))
	r.RegisterHandler(toggle.NewActivateHandler(svc, menu, builder))
	r.RegisterHandler(toggle.NewPauseHandler(svc, menu, builder))
	r.RegisterHandler(price_table.NewHandler(svc))
	r.RegisterButton(constants.ButtonTexts.Help, helpHandler)

	logger.Debug("🔧 Хэндлеры зарегистрированы: %v", r.GetCommands())
	return r
}
