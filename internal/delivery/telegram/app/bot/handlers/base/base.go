// internal/delivery/telegram/app/bot/handlers/base/base.go
package base

import "entry-zone-bot/internal/delivery/telegram/app/bot/handlers"

// BaseHandler базовая структура для всех хэндлеров
type BaseHandler struct {
	Name    string
	Command string
	Type    handlers.HandlerType
}

// GetName возвращает имя хэндлера
func (h *BaseHandler) GetName() string {
	return h.Name
}

// GetCommand возвращает команду/текст кнопки
func (h *BaseHandler) GetCommand() string {
	return h.Command
}

// GetType возвращает тип хэндлера
func (h *BaseHandler) GetType() handlers.HandlerType {
	return h.Type
}

// GetStatusDisplay возвращает отображение статуса автосканирования
func (h *BaseHandler) GetStatusDisplay(isActive bool) string {
	if isActive {
		return "Activo ✅"
	}
	return "Pausado ⏸️"
}
