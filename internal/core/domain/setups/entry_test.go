package setups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryRange(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   EntryBand
		wantOK bool
	}{
		{name: "hyphen range", raw: "100-110", want: EntryBand{Min: 100, Max: 110}, wantOK: true},
		{name: "reversed range", raw: "110-100", want: EntryBand{Min: 100, Max: 110}, wantOK: true},
		{name: "single value", raw: "100", want: EntryBand{Min: 100, Max: 100}, wantOK: true},
		{name: "word separator", raw: "100 a 110", want: EntryBand{Min: 100, Max: 110}, wantOK: true},
		{name: "word separator upper case", raw: "100 A 110", want: EntryBand{Min: 100, Max: 110}, wantOK: true},
		{name: "slash", raw: "0.5 / 0.45", want: EntryBand{Min: 0.45, Max: 0.5}, wantOK: true},
		{name: "double hyphen", raw: "100--110", want: EntryBand{Min: 100, Max: 110}, wantOK: true},
		{name: "spaced hyphen", raw: " 60000 - 61000 ", want: EntryBand{Min: 60000, Max: 61000}, wantOK: true},
		{name: "decimal comma", raw: "1,25-1,5", want: EntryBand{Min: 1.25, Max: 1.5}, wantOK: true},
		{name: "three numbers", raw: "105-100-120", want: EntryBand{Min: 100, Max: 120}, wantOK: true},
		{name: "text", raw: "abc", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
		{name: "blank", raw: "   ", wantOK: false},
		{name: "partial garbage", raw: "100-abc", wantOK: false},
		{name: "only separator", raw: "-", wantOK: false},
		{name: "not a number", raw: "NaN", wantOK: false},
		{name: "infinity", raw: "100-inf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEntryRange(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, EntryBand{}, got)
				return
			}
			assert.InDelta(t, tt.want.Min, got.Min, 1e-12)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-12)
			assert.LessOrEqual(t, got.Min, got.Max)
		})
	}
}

func TestEntryBandContains(t *testing.T) {
	band := EntryBand{Min: 100, Max: 110}

	assert.True(t, band.Contains(100))
	assert.True(t, band.Contains(105))
	assert.True(t, band.Contains(110))
	assert.False(t, band.Contains(99.99))
	assert.False(t, band.Contains(110.01))
	assert.False(t, band.IsPoint())
	assert.True(t, EntryBand{Min: 5, Max: 5}.IsPoint())
}
