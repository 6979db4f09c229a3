// internal/delivery/telegram/app/bot/formatters/table.go
package formatters

import (
	"fmt"
	"sort"
	"strings"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/proximity"
	"entry-zone-bot/internal/core/domain/setups"
)

// MainTableTitle заголовок основного отчета
const MainTableTitle = "📊 *TABLERO OPERATIVO* 📊"

// TableFormatter форматирует основной отчет: все строки, сгруппированные по символу
type TableFormatter struct {
	nf *NumberFormatter
}

// NewTableFormatter создает форматтер основного отчета
func NewTableFormatter(nf *NumberFormatter) *TableFormatter {
	if nf == nil {
		nf = NewNumberFormatter()
	}
	return &TableFormatter{nf: nf}
}

// Format строит основной отчет.
// Символы по возрастанию, внутри группы строки по номеру строки таблицы.
func (f *TableFormatter) Format(rows []setups.TradeSetupRow, quotes map[string]market.Quote) string {
	groups := make(map[string][]setups.TradeSetupRow)
	for _, row := range rows {
		groups[row.Symbol] = append(groups[row.Symbol], row)
	}

	symbols := make([]string, 0, len(groups))
	for symbol := range groups {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var builder strings.Builder
	builder.WriteString(MainTableTitle)
	builder.WriteString("\n\n")

	for _, symbol := range symbols {
		quote, hasQuote := quotes[symbol]

		builder.WriteString(f.formatHeader(symbol, quote, hasQuote))
		builder.WriteString("\n")

		group := groups[symbol]
		setups.SortByOrdinal(group)
		for _, row := range group {
			builder.WriteString(f.formatRow(row, quote, hasQuote))
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func (f *TableFormatter) formatHeader(symbol string, quote market.Quote, hasQuote bool) string {
	if !hasQuote {
		return fmt.Sprintf("🪙 %s | (Sin Datos)", EscapeMarkdown(symbol))
	}
	return fmt.Sprintf("🪙 %s %s | $%s (%s)",
		EscapeMarkdown(symbol),
		f.nf.TrendIcon(quote.ChangePercent),
		f.nf.FormatPrice(quote.Price),
		f.nf.FormatChange(quote.ChangePercent),
	)
}

func (f *TableFormatter) formatRow(row setups.TradeSetupRow, quote market.Quote, hasQuote bool) string {
	direction := strings.ToLower(strings.TrimSpace(row.Direction))
	if direction == "" {
		direction = "trade"
	}

	line := fmt.Sprintf("   🔹 #%d %s   🎯 Entry: %s",
		row.RowOrdinal, EscapeMarkdown(direction), EscapeMarkdown(row.EntryRaw))

	if hasQuote {
		band := row.Band()
		severity := proximity.Classify(proximity.Distance(quote.Price, band))
		line += fmt.Sprintf(" | %s %s%s",
			severity.Marker, proximity.DirectionSign(quote.Price, band), severity.Percent)
	}
	return line
}
