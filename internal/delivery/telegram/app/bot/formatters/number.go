// internal/delivery/telegram/app/bot/formatters/number.go
package formatters

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberFormatter отвечает за форматирование чисел
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter создает новый форматтер чисел (разделитель тысяч - запятая)
func NewNumberFormatter() *NumberFormatter {
	return &NumberFormatter{
		printer: message.NewPrinter(language.English),
	}
}

// FormatPrice форматирует цену: >= 1 с разделителем тысяч и 2 знаками, < 1 с 4 знаками
func (f *NumberFormatter) FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "0.00"
	}
	if price >= 1 {
		return f.printer.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.4f", price)
}

// FormatChange форматирует изменение за 24ч: знак "+" только для неотрицательных
func (f *NumberFormatter) FormatChange(changePercent float64) string {
	if changePercent >= 0 {
		return fmt.Sprintf("+%.2f%%", changePercent)
	}
	return fmt.Sprintf("%.2f%%", changePercent)
}

// TrendIcon 🟢 для роста или нуля, 🔴 для падения
func (f *NumberFormatter) TrendIcon(changePercent float64) string {
	if changePercent >= 0 {
		return "🟢"
	}
	return "🔴"
}
