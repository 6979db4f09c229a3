// internal/delivery/telegram/app/bot/formatters/menu.go
package formatters

import (
	"fmt"
	"strings"
	"time"

	"entry-zone-bot/internal/core/domain/schedule"
)

// MenuFormatter тексты меню и справки
type MenuFormatter struct{}

// NewMenuFormatter создает форматтер меню
func NewMenuFormatter() *MenuFormatter {
	return &MenuFormatter{}
}

// StartMessage приветствие /start с расписанием автосканирования
func (f *MenuFormatter) StartMessage(policy schedule.Policy, status string) string {
	var b strings.Builder
	b.WriteString("🤖 *Bot Iniciado*\n\n")
	b.WriteString("Comandos disponibles:\n")
	b.WriteString("/help - Ver ayuda\n")
	b.WriteString("/precio BTC - Ver precio actual de una moneda\n")
	b.WriteString("\n🕒 *Horario Automático:*\n")
	fmt.Fprintf(&b, "☀️ %02d:00 - %02d:00 (%s)\n", policy.DayStartHour, policy.DayEndHour, humanInterval(policy.DayInterval))
	fmt.Fprintf(&b, "🌙 %02d:00 - %02d:00 (%s)", policy.DayEndHour, policy.DayStartHour, humanInterval(policy.NightInterval))
	if status != "" {
		fmt.Fprintf(&b, "\n\n⚙️ Estado: %s", status)
	}
	return b.String()
}

// HelpMessage справка по кнопкам и командам
func (f *MenuFormatter) HelpMessage() string {
	return "📚 *AYUDA DEL BOT* 📚\n\n" +
		"🔹 *Botones:*\n" +
		"• *VER AHORA:* Escanea el CSV y manda el informe al instante.\n" +
		"• *ACTIVAR / PAUSAR:* Enciende o detiene el escaneo automático.\n" +
		"• *PRECIOS TABLA:* Precio actual de todas las monedas pendientes.\n\n" +
		"🔹 *Comandos de texto:*\n" +
		"• `/precio ETH` -> Te dice el precio actual de Ethereum en Binance.\n" +
		"• `/start` -> Reinicia el menú."
}

// humanInterval: 10m -> "10 min", 90s -> "1m30s"
func humanInterval(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		return fmt.Sprintf("%d min", int(d/time.Minute))
	}
	return d.String()
}
