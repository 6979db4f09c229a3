// application/services/scanner/prices.go
package scanner

import (
	"context"
	"fmt"

	"entry-zone-bot/internal/core/domain/setups"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
)

// PriceCheck ответ на "/precio SYM"
func (s *Service) PriceCheck(ctx context.Context, symbol string) string {
	symbol = s.normalizer.NormalizeSymbol(symbol)
	if symbol == "" {
		return "⚠️ Uso: `/precio BTC` o `/precio ETH`"
	}

	quotes := s.quotes.GetMarketQuotes(ctx, []string{symbol})
	quote, ok := quotes[symbol]
	if !ok {
		return fmt.Sprintf("❌ No encontré el par *%s* en Binance Futures.", formatters.EscapeMarkdown(symbol))
	}

	nf := s.formatters.NumberFormatter
	return fmt.Sprintf("🪙 *%s* %s\n💰 Precio: `$%s`\n📊 24h: `%s`",
		formatters.EscapeMarkdown(symbol),
		nf.TrendIcon(quote.ChangePercent),
		nf.FormatPrice(quote.Price),
		nf.FormatChange(quote.ChangePercent),
	)
}

// PriceTable цены всех символов из ожидающих строк
func (s *Service) PriceTable(ctx context.Context) string {
	rows, err := s.source.LoadPending(ctx)
	if err != nil || len(rows) == 0 {
		return MsgNoRows
	}

	symbols := setups.DistinctSymbols(rows)
	quotes := s.quotes.GetMarketQuotes(ctx, symbols)
	if len(quotes) == 0 {
		return MsgNoQuotes
	}
	return s.formatters.PriceFormatter.FormatTable(symbols, quotes)
}
