// internal/core/domain/proximity/proximity.go
package proximity

import (
	"math"

	"entry-zone-bot/internal/core/domain/setups"
)

// FireZoneThreshold - порог "зоны выстрела": дистанция строго меньше 15%
const FireZoneThreshold = 0.15

// Distance возвращает нормированную дистанцию от цены до зоны входа.
// Внутри зоны - 0. Снаружи - расстояние до ближайшей границы, деленное на цену этой границы.
func Distance(marketPrice float64, band setups.EntryBand) float64 {
	if band.Contains(marketPrice) {
		return 0
	}

	distMin := math.Abs(marketPrice - band.Min)
	distMax := math.Abs(marketPrice - band.Max)

	closest, target := distMax, band.Max
	if distMin < distMax {
		closest, target = distMin, band.Min
	}

	if target == 0 {
		return math.Inf(1)
	}
	return closest / math.Abs(target)
}

// DirectionSign: "+" цена ниже зоны (должна вырасти), "-" выше зоны, "" внутри
func DirectionSign(marketPrice float64, band setups.EntryBand) string {
	switch {
	case marketPrice < band.Min:
		return "+"
	case marketPrice > band.Max:
		return "-"
	default:
		return ""
	}
}

// InFireZone - строка попадает в отчет "зона выстрела"
func InFireZone(distance float64) bool {
	return distance < FireZoneThreshold
}
