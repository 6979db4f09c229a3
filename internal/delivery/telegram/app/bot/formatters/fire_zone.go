// internal/delivery/telegram/app/bot/formatters/fire_zone.go
package formatters

import (
	"fmt"
	"sort"
	"strings"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/proximity"
	"entry-zone-bot/internal/core/domain/setups"
)

const (
	// FireZoneTitle заголовок отчета "зона выстрела"
	FireZoneTitle = "🚨 *ZONA DE DISPARO (<15%)* 🚨"
	// FireZoneAllClear текст, когда ни одна строка не ближе 15%
	FireZoneAllClear = "✅ Todo tranquilo (<15%)."
)

// FireZoneHit строка, попавшая в зону выстрела
type FireZoneHit struct {
	Row      setups.TradeSetupRow
	Price    float64
	Distance float64
	Severity proximity.Severity
	Sign     string
}

// FireZoneFormatter форматирует отчет по строкам с дистанцией < 15%
type FireZoneFormatter struct {
	nf *NumberFormatter
}

// NewFireZoneFormatter создает форматтер зоны выстрела
func NewFireZoneFormatter(nf *NumberFormatter) *FireZoneFormatter {
	if nf == nil {
		nf = NewNumberFormatter()
	}
	return &FireZoneFormatter{nf: nf}
}

// Hits отбирает строки с котировкой и дистанцией < 15%, по возрастанию дистанции.
// При равной дистанции сохраняется входной порядок.
func (f *FireZoneFormatter) Hits(rows []setups.TradeSetupRow, quotes map[string]market.Quote) []FireZoneHit {
	hits := make([]FireZoneHit, 0)
	for _, row := range rows {
		quote, ok := quotes[row.Symbol]
		if !ok {
			continue
		}

		band := row.Band()
		dist := proximity.Distance(quote.Price, band)
		if !proximity.InFireZone(dist) {
			continue
		}

		hits = append(hits, FireZoneHit{
			Row:      row,
			Price:    quote.Price,
			Distance: dist,
			Severity: proximity.Classify(dist),
			Sign:     proximity.DirectionSign(quote.Price, band),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Format строит отчет зоны выстрела
func (f *FireZoneFormatter) Format(rows []setups.TradeSetupRow, quotes map[string]market.Quote) string {
	return f.FormatHits(f.Hits(rows, quotes))
}

// FormatHits строит отчет по уже отобранным строкам
func (f *FireZoneFormatter) FormatHits(hits []FireZoneHit) string {
	if len(hits) == 0 {
		return FireZoneAllClear
	}

	var builder strings.Builder
	builder.WriteString(FireZoneTitle)
	builder.WriteString("\n\n")

	for _, hit := range hits {
		row := hit.Row

		direction := strings.ToUpper(strings.TrimSpace(row.Direction))
		if direction == "" {
			direction = "TRADE"
		}

		title := []string{fmt.Sprintf("🔥 #%d %s", row.RowOrdinal, EscapeMarkdown(row.Symbol))}
		if setup := strings.TrimSpace(row.SetupLabel); setup != "" {
			title = append(title, EscapeMarkdown(setup))
		}
		if risk := strings.TrimSpace(row.RiskLabel); risk != "" {
			title = append(title, EscapeMarkdown(risk))
		}
		title = append(title, EscapeMarkdown(direction))

		builder.WriteString(strings.Join(title, " "))
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("   🎯 Entry: %s | 🏦 Price: %s\n",
			EscapeMarkdown(row.EntryRaw), f.nf.FormatPrice(hit.Price)))
		builder.WriteString(fmt.Sprintf("   ⚠️ Dist: %s %s%s\n",
			hit.Severity.Marker, hit.Sign, hit.Severity.Percent))
		if link := ChartURL(row.ChartLink); link != "" {
			builder.WriteString(fmt.Sprintf("   📊 [Ver Gráfico](%s)\n", link))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}
