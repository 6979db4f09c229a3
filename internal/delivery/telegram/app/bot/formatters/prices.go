// internal/delivery/telegram/app/bot/formatters/prices.go
package formatters

import (
	"fmt"
	"sort"
	"strings"

	"entry-zone-bot/internal/core/domain/market"
)

// PriceTableTitle заголовок таблицы цен
const PriceTableTitle = "💰 *PRECIOS* 💰"

// PriceFormatter форматирует краткую таблицу цен
type PriceFormatter struct {
	nf *NumberFormatter
}

// NewPriceFormatter создает форматтер цен
func NewPriceFormatter(nf *NumberFormatter) *PriceFormatter {
	if nf == nil {
		nf = NewNumberFormatter()
	}
	return &PriceFormatter{nf: nf}
}

// FormatTable одна строка на символ, по алфавиту
func (f *PriceFormatter) FormatTable(symbols []string, quotes map[string]market.Quote) string {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)

	var builder strings.Builder
	builder.WriteString(PriceTableTitle)
	builder.WriteString("\n\n")
	for _, symbol := range sorted {
		builder.WriteString(f.FormatQuote(symbol, quotes[symbol], hasKey(quotes, symbol)))
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatQuote строка одного символа (используется и для /precio)
func (f *PriceFormatter) FormatQuote(symbol string, quote market.Quote, ok bool) string {
	if !ok {
		return fmt.Sprintf("🪙 %s | (Sin Datos)", EscapeMarkdown(symbol))
	}
	return fmt.Sprintf("🪙 %s %s | $%s (%s)",
		EscapeMarkdown(symbol),
		f.nf.TrendIcon(quote.ChangePercent),
		f.nf.FormatPrice(quote.Price),
		f.nf.FormatChange(quote.ChangePercent),
	)
}

func hasKey(quotes map[string]market.Quote, symbol string) bool {
	_, ok := quotes[symbol]
	return ok
}
