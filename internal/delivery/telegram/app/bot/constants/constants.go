// internal/delivery/telegram/app/bot/constants/constants.go
package constants

// ButtonTexts тексты кнопок главного меню (reply-клавиатура)
var ButtonTexts = struct {
	ScanNow    string
	Activate   string
	Pause      string
	PriceTable string
	Help       string
}{
	ScanNow:    "👀 VER AHORA",
	Activate:   "🟢 ACTIVAR BOT",
	Pause:      "🔴 PAUSAR BOT",
	PriceTable: "💰 PRECIOS TABLA",
	Help:       "❓ AYUDA",
}

// Команды бота (без "/")
const (
	CommandStart  = "start"
	CommandHelp   = "help"
	CommandPrecio = "precio"
)

// CommandDescriptions описания для setMyCommands
var CommandDescriptions = struct {
	Start  string
	Help   string
	Precio string
}{
	Start:  "Menú principal",
	Help:   "Ver ayuda",
	Precio: "Precio actual: /precio BTC",
}

// Ответы на действия
const (
	MsgScanning    = "🔎 Escaneando..."
	MsgActivated   = "🚀 %s"
	MsgPaused      = "⏸️ Escaneo automático detenido."
	MsgRestarted   = "🤖 *Bot Reiniciado*\n⚙️ Estado: %s\nEscribe /start para ver menú."
	MsgCommandFail = "❌ Error: %v"
)
