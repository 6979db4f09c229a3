// internal/core/domain/setups/entry.go
package setups

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// EntryBand зона входа [Min, Max], Min <= Max
type EntryBand struct {
	Min float64
	Max float64
}

// Contains - цена внутри зоны (границы включительно)
func (b EntryBand) Contains(price float64) bool {
	return b.Min <= price && price <= b.Max
}

// IsPoint - зона схлопнута в одну цену
func (b EntryBand) IsPoint() bool {
	return b.Min == b.Max
}

// Разделители диапазона: "100-110", "100 a 110", "100/110", "100--110"
var entrySeparators = regexp.MustCompile(`(?i)\s*-\s*|\s+a\s+|\s*/\s*|\s*--\s*`)

// ParseEntryRange разбирает текст цены входа в упорядоченную зону.
// Любой нечисловой токен делает весь результат невалидным, частичных зон нет.
func ParseEntryRange(raw string) (EntryBand, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if text == "" {
		return EntryBand{}, false
	}

	parts := entrySeparators.Split(text, -1)
	nums := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return EntryBand{}, false
		}
		nums = append(nums, value)
	}

	switch len(nums) {
	case 0:
		return EntryBand{}, false
	case 1:
		return EntryBand{Min: nums[0], Max: nums[0]}, true
	}

	band := EntryBand{Min: nums[0], Max: nums[0]}
	for _, v := range nums[1:] {
		band.Min = math.Min(band.Min, v)
		band.Max = math.Max(band.Max, v)
	}
	return band, true
}
