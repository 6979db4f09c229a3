// internal/delivery/telegram/app/bot/buttons/builder.go
package buttons

import (
	"entry-zone-bot/internal/delivery/telegram"
	"entry-zone-bot/internal/delivery/telegram/app/bot/constants"
)

// ButtonBuilder - построитель клавиатур
type ButtonBuilder struct{}

// NewButtonBuilder создает новый построитель кнопок
func NewButtonBuilder() *ButtonBuilder {
	return &ButtonBuilder{}
}

// CreateMainMenuKeyboard главное меню; вторая строка зависит от состояния бота
func (b *ButtonBuilder) CreateMainMenuKeyboard(active bool) telegram.ReplyKeyboardMarkup {
	toggle := constants.ButtonTexts.Pause
	if !active {
		toggle = constants.ButtonTexts.Activate
	}

	return telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.ReplyKeyboardButton{
			{{Text: constants.ButtonTexts.ScanNow}},
			{{Text: toggle}},
			{{Text: constants.ButtonTexts.PriceTable}, {Text: constants.ButtonTexts.Help}},
		},
		ResizeKeyboard: true,
	}
}
