// internal/delivery/telegram/app/bot/handlers/commands/start/interface.go
package start

import "entry-zone-bot/internal/core/domain/schedule"

// StatusService состояние автосканирования для меню
type StatusService interface {
	IsActive() bool
	StatusLabel() string
	Policy() schedule.Policy
}
