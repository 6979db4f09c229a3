package formatters

import (
	"strings"
	"testing"
	"time"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/schedule"
	"entry-zone-bot/internal/core/domain/setups"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btcRow(ordinal int) setups.TradeSetupRow {
	return setups.TradeSetupRow{
		Symbol:     "BTCUSDT",
		EntryMin:   60000,
		EntryMax:   61000,
		EntryRaw:   "60000-61000",
		Direction:  "Long",
		SetupLabel: "A",
		RiskLabel:  "1R",
		RowOrdinal: ordinal,
	}
}

func TestFormatPrice(t *testing.T) {
	nf := NewNumberFormatter()

	assert.Equal(t, "60,000.00", nf.FormatPrice(60000))
	assert.Equal(t, "1,234,567.89", nf.FormatPrice(1234567.891))
	assert.Equal(t, "1.50", nf.FormatPrice(1.5))
	assert.Equal(t, "0.4321", nf.FormatPrice(0.43214))
	assert.Equal(t, "0.0000", nf.FormatPrice(0))
}

func TestFormatChange(t *testing.T) {
	nf := NewNumberFormatter()

	assert.Equal(t, "+2.50%", nf.FormatChange(2.5))
	assert.Equal(t, "+0.00%", nf.FormatChange(0))
	assert.Equal(t, "-1.25%", nf.FormatChange(-1.25))
	assert.Equal(t, "🟢", nf.TrendIcon(0))
	assert.Equal(t, "🔴", nf.TrendIcon(-0.01))
}

func TestMainTableBitcoinBelowBand(t *testing.T) {
	f := NewTableFormatter(nil)
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 59000, ChangePercent: -2.1}}

	out := f.Format([]setups.TradeSetupRow{btcRow(4)}, quotes)

	assert.True(t, strings.HasPrefix(out, MainTableTitle+"\n\n"))
	assert.Contains(t, out, "🪙 BTCUSDT 🔴 | $59,000.00 (-2.10%)\n")
	assert.Contains(t, out, "   🔹 #4 long   🎯 Entry: 60000-61000 | 🟢🟢 +1.67%\n")
}

func TestMainTableInsideBandHasNoSign(t *testing.T) {
	f := NewTableFormatter(nil)
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 60500, ChangePercent: 1}}

	out := f.Format([]setups.TradeSetupRow{btcRow(2)}, quotes)

	assert.Contains(t, out, "🪙 BTCUSDT 🟢 | $60,500.00 (+1.00%)\n")
	assert.Contains(t, out, "| 🟢🟢 0.00%\n")
}

func TestMainTableGroupsAndOrders(t *testing.T) {
	f := NewTableFormatter(nil)
	rows := []setups.TradeSetupRow{
		{Symbol: "SOLUSDT", EntryMin: 100, EntryMax: 110, EntryRaw: "100-110", RowOrdinal: 9},
		{Symbol: "ETHUSDT", EntryMin: 2000, EntryMax: 2000, EntryRaw: "2000", RowOrdinal: 7, Direction: "Short"},
		{Symbol: "ETHUSDT", EntryMin: 1800, EntryMax: 1900, EntryRaw: "1800-1900", RowOrdinal: 3},
	}
	quotes := map[string]market.Quote{"ETHUSDT": {Price: 2100, ChangePercent: 0.5}}

	out := f.Format(rows, quotes)

	eth := strings.Index(out, "🪙 ETHUSDT")
	sol := strings.Index(out, "🪙 SOLUSDT | (Sin Datos)")
	require.True(t, eth >= 0 && sol >= 0)
	assert.Less(t, eth, sol)

	row3 := strings.Index(out, "#3 trade")
	row7 := strings.Index(out, "#7 short")
	require.True(t, row3 >= 0 && row7 >= 0)
	assert.Less(t, row3, row7)

	// без котировки - без дистанции
	assert.Contains(t, out, "   🔹 #9 trade   🎯 Entry: 100-110\n")
	// выше зоны: (2100-2000)/2000 = 5%
	assert.Contains(t, out, "#7 short   🎯 Entry: 2000 | 🟢🟢 -5.00%\n")
}

func TestMainTableEscapesFreeText(t *testing.T) {
	f := NewTableFormatter(nil)
	row := btcRow(2)
	row.EntryRaw = "60000_61000"
	row.Direction = "long*"

	out := f.Format([]setups.TradeSetupRow{row}, nil)

	assert.Contains(t, out, `#2 long\*   🎯 Entry: 60000\_61000`)
}

func TestFireZoneBitcoinExample(t *testing.T) {
	f := NewFireZoneFormatter(nil)
	row := btcRow(4)
	row.ChartLink = "https://tradingview.com/x"
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 59000}}

	out := f.Format([]setups.TradeSetupRow{row}, quotes)

	assert.True(t, strings.HasPrefix(out, FireZoneTitle+"\n\n"))
	assert.Contains(t, out, "🔥 #4 BTCUSDT A 1R LONG\n")
	assert.Contains(t, out, "   🎯 Entry: 60000-61000 | 🏦 Price: 59,000.00\n")
	assert.Contains(t, out, "   ⚠️ Dist: 🟢🟢 +1.67%\n")
	assert.Contains(t, out, "   📊 [Ver Gráfico](https://tradingview.com/x)\n")
}

func TestFireZoneDropsUnsafeChartLinks(t *testing.T) {
	f := NewFireZoneFormatter(nil)
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 59000}}

	for _, link := range []string{
		"https://tradingview.com/x)y",
		"javascript:alert(1)",
		"tradingview.com/x",
		"https://tradingview.com/a b",
	} {
		row := btcRow(4)
		row.ChartLink = link

		out := f.Format([]setups.TradeSetupRow{row}, quotes)

		assert.NotContains(t, out, "Ver Gráfico", "link=%q", link)
		assert.Contains(t, out, "⚠️ Dist:", "link=%q", link)
	}
}

func TestSymbolsAreEscaped(t *testing.T) {
	row := btcRow(4)
	row.Symbol = "BTC_USDT"
	quotes := map[string]market.Quote{"BTC_USDT": {Price: 59000}}

	fire := NewFireZoneFormatter(nil).Format([]setups.TradeSetupRow{row}, quotes)
	assert.Contains(t, fire, `🔥 #4 BTC\_USDT A 1R LONG`)

	table := NewTableFormatter(nil).Format([]setups.TradeSetupRow{row}, quotes)
	assert.Contains(t, table, `🪙 BTC\_USDT `)
	assert.NotContains(t, table, "BTC_USDT")

	assert.Equal(t, `🪙 X\*USDT | (Sin Datos)`, NewPriceFormatter(nil).FormatQuote("X*USDT", market.Quote{}, false))
}

func TestChartURL(t *testing.T) {
	assert.Equal(t, "https://tradingview.com/x", ChartURL("  https://tradingview.com/x "))
	assert.Equal(t, "http://a.b/c_d?e=1", ChartURL("http://a.b/c_d?e=1"))
	assert.Empty(t, ChartURL(""))
	assert.Empty(t, ChartURL("https://a.b/(x)"))
	assert.Empty(t, ChartURL("ftp://a.b/x"))
}

func TestFireZoneOrderingAndExclusions(t *testing.T) {
	f := NewFireZoneFormatter(nil)
	// AAA и EEE на 10%, BBB ровно на 15%, CCC внутри зоны, у DDD нет котировки
	rows := []setups.TradeSetupRow{
		{Symbol: "AAAUSDT", EntryMin: 100, EntryMax: 100, EntryRaw: "100", RowOrdinal: 2},
		{Symbol: "BBBUSDT", EntryMin: 100, EntryMax: 100, EntryRaw: "100", RowOrdinal: 3},
		{Symbol: "CCCUSDT", EntryMin: 100, EntryMax: 110, EntryRaw: "100-110", RowOrdinal: 4},
		{Symbol: "DDDUSDT", EntryMin: 100, EntryMax: 100, EntryRaw: "100", RowOrdinal: 5},
		{Symbol: "EEEUSDT", EntryMin: 100, EntryMax: 100, EntryRaw: "100", RowOrdinal: 6},
	}
	quotes := map[string]market.Quote{
		"AAAUSDT": {Price: 90},
		"BBBUSDT": {Price: 85},
		"CCCUSDT": {Price: 105},
		"EEEUSDT": {Price: 110},
	}

	hits := f.Hits(rows, quotes)
	require.Len(t, hits, 3)
	assert.Equal(t, 4, hits[0].Row.RowOrdinal)
	assert.Equal(t, 2, hits[1].Row.RowOrdinal)
	assert.Equal(t, 6, hits[2].Row.RowOrdinal)
	assert.Equal(t, "+", hits[1].Sign)
	assert.Equal(t, "-", hits[2].Sign)

	out := f.FormatHits(hits)
	assert.NotContains(t, out, "BBBUSDT")
	assert.NotContains(t, out, "DDDUSDT")
	assert.Contains(t, out, "🔥 #4 CCCUSDT TRADE\n")
	assert.NotContains(t, out, "Ver Gráfico")
}

func TestFireZoneAllClear(t *testing.T) {
	f := NewFireZoneFormatter(nil)
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 30000}}

	assert.Equal(t, FireZoneAllClear, f.Format([]setups.TradeSetupRow{btcRow(2)}, quotes))
	assert.Equal(t, FireZoneAllClear, f.Format(nil, nil))
}

func TestPriceTable(t *testing.T) {
	f := NewPriceFormatter(nil)
	quotes := map[string]market.Quote{
		"BTCUSDT":  {Price: 65000.5, ChangePercent: 1.2},
		"DOGEUSDT": {Price: 0.12346, ChangePercent: -3},
	}

	out := f.FormatTable([]string{"DOGEUSDT", "XYZUSDT", "BTCUSDT"}, quotes)

	assert.True(t, strings.HasPrefix(out, PriceTableTitle))
	assert.Contains(t, out, "🪙 BTCUSDT 🟢 | $65,000.50 (+1.20%)\n")
	assert.Contains(t, out, "🪙 DOGEUSDT 🔴 | $0.1235 (-3.00%)\n")
	assert.Contains(t, out, "🪙 XYZUSDT | (Sin Datos)\n")
	assert.Less(t, strings.Index(out, "BTCUSDT"), strings.Index(out, "DOGEUSDT"))
}

func TestBuildReport(t *testing.T) {
	p := NewFormatterProvider(0)
	quotes := map[string]market.Quote{"BTCUSDT": {Price: 59000}}

	report := p.BuildReport([]setups.TradeSetupRow{btcRow(2)}, quotes)

	require.Len(t, report.MainChunks, 1)
	require.Len(t, report.FireZoneChunks, 1)
	require.Len(t, report.Hits, 1)
	assert.Contains(t, report.MainChunks[0], "TABLERO OPERATIVO")
	assert.Contains(t, report.FireZoneChunks[0], "ZONA DE DISPARO")
	assert.Equal(t, DefaultChunkLimit, p.ChunkLimit)
}

func TestStartMessageFollowsPolicy(t *testing.T) {
	f := NewMenuFormatter()
	policy := schedule.Policy{
		Location:      time.UTC,
		DayStartHour:  5,
		DayEndHour:    18,
		DayInterval:   10 * time.Minute,
		NightInterval: 60 * time.Minute,
	}

	msg := f.StartMessage(policy, "Modo Día ☀️ (10m)")
	assert.Contains(t, msg, "🤖 *Bot Iniciado*")
	assert.Contains(t, msg, "☀️ 05:00 - 18:00 (10 min)\n🌙 18:00 - 05:00 (60 min)")
	assert.True(t, strings.HasSuffix(msg, "⚙️ Estado: Modo Día ☀️ (10m)"))

	policy.DayInterval = 90 * time.Second
	assert.Contains(t, f.StartMessage(policy, ""), "(1m30s)")
	assert.NotContains(t, f.StartMessage(policy, ""), "Estado")
}

func TestHelpMessageMentionsCommands(t *testing.T) {
	msg := NewMenuFormatter().HelpMessage()
	assert.Contains(t, msg, "`/precio ETH`")
	assert.Contains(t, msg, "`/start`")
	assert.Contains(t, msg, "VER AHORA")
}
