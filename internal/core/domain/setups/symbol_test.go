package setups

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	n := NewNormalizer(nil, "")

	tests := []struct {
		raw  string
		want string
	}{
		{raw: " Sólana ", want: "SOLANAUSDT"},
		{raw: "BTCUSDT", want: "BTCUSDT"},
		{raw: "btc", want: "BTCUSDT"},
		{raw: "eth usdt", want: "ETHUSDT"},
		{raw: "Ñandú", want: "NANDUUSDT"},
		{raw: "paxgusd", want: "PAXGUSD"},
		{raw: "BNBBUSD", want: "BNBBUSD"},
		{raw: "sui\t", want: "SUIUSDT"},
		{raw: "", want: ""},
		{raw: "   ", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, n.NormalizeSymbol(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeSymbolCustomSuffixes(t *testing.T) {
	n := NewNormalizer([]string{" usdc ", ""}, "usdc")

	assert.Equal(t, "ETHUSDC", n.NormalizeSymbol("eth"))
	assert.Equal(t, "ETHUSDC", n.NormalizeSymbol("ETHUSDC"))
	// USDT не входит в список суффиксов, поэтому дописывается USDC
	assert.Equal(t, "ETHUSDTUSDC", n.NormalizeSymbol("ETHUSDT"))
}

func TestDistinctSymbolsKeepsFirstSeenOrder(t *testing.T) {
	rows := []TradeSetupRow{
		{Symbol: "ETHUSDT"},
		{Symbol: "BTCUSDT"},
		{Symbol: "ETHUSDT"},
		{Symbol: "SOLUSDT"},
	}

	assert.Equal(t, []string{"ETHUSDT", "BTCUSDT", "SOLUSDT"}, DistinctSymbols(rows))
}

func TestSortByOrdinalIsStable(t *testing.T) {
	rows := []TradeSetupRow{
		{Symbol: "A", RowOrdinal: 5},
		{Symbol: "B", RowOrdinal: 2},
		{Symbol: "C", RowOrdinal: 5},
		{Symbol: "D", RowOrdinal: 3},
	}

	SortByOrdinal(rows)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Symbol)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, got)
}
