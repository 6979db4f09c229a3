// internal/delivery/telegram/app/bot/formatters/provider.go
package formatters

import (
	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/setups"
)

// FormatterProvider предоставляет доступ ко всем форматтерам
type FormatterProvider struct {
	NumberFormatter   *NumberFormatter
	TableFormatter    *TableFormatter
	FireZoneFormatter *FireZoneFormatter
	PriceFormatter    *PriceFormatter
	MenuFormatter     *MenuFormatter
	ChunkLimit        int
}

// NewFormatterProvider создает новый провайдер форматтеров
func NewFormatterProvider(chunkLimit int) *FormatterProvider {
	nf := NewNumberFormatter()
	if chunkLimit <= 0 {
		chunkLimit = DefaultChunkLimit
	}
	return &FormatterProvider{
		NumberFormatter:   nf,
		TableFormatter:    NewTableFormatter(nf),
		FireZoneFormatter: NewFireZoneFormatter(nf),
		PriceFormatter:    NewPriceFormatter(nf),
		MenuFormatter:     NewMenuFormatter(),
		ChunkLimit:        chunkLimit,
	}
}

// Report отчет одного цикла, уже разбитый на сообщения
type Report struct {
	MainChunks     []string
	FireZoneChunks []string
	Hits           []FireZoneHit
}

// BuildReport строит оба отчета и делит их на сообщения
func (p *FormatterProvider) BuildReport(rows []setups.TradeSetupRow, quotes map[string]market.Quote) Report {
	hits := p.FireZoneFormatter.Hits(rows, quotes)
	return Report{
		MainChunks:     SmartSplit(p.TableFormatter.Format(rows, quotes), p.ChunkLimit),
		FireZoneChunks: SmartSplit(p.FireZoneFormatter.FormatHits(hits), p.ChunkLimit),
		Hits:           hits,
	}
}
