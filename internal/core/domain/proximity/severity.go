// internal/core/domain/proximity/severity.go
package proximity

import "fmt"

// Tier уровень близости к зоне входа
type Tier int

const (
	TierStrongest Tier = iota // < 7%
	TierStrong                // 7% - 15%
	TierModerate              // 15% - 30%
	TierWeak                  // 30% - 50%
	TierWeakest               // >= 50%
)

// String возвращает название уровня
func (t Tier) String() string {
	switch t {
	case TierStrongest:
		return "double-green"
	case TierStrong:
		return "green"
	case TierModerate:
		return "yellow"
	case TierWeak:
		return "double-yellow"
	default:
		return "red"
	}
}

// Marker возвращает "светофор" уровня
func (t Tier) Marker() string {
	switch t {
	case TierStrongest:
		return "🟢🟢"
	case TierStrong:
		return "🟢"
	case TierModerate:
		return "🟡"
	case TierWeak:
		return "🟡🟡"
	default:
		return "🔴"
	}
}

// Severity результат классификации дистанции
type Severity struct {
	Tier    Tier
	Marker  string
	Percent string // "1.67%"
}

// Classify относит дистанцию к уровню. Границы включаются снизу.
func Classify(distance float64) Severity {
	pct := distance * 100

	var tier Tier
	switch {
	case pct < 7:
		tier = TierStrongest
	case pct < 15:
		tier = TierStrong
	case pct < 30:
		tier = TierModerate
	case pct < 50:
		tier = TierWeak
	default:
		tier = TierWeakest
	}

	return Severity{
		Tier:    tier,
		Marker:  tier.Marker(),
		Percent: fmt.Sprintf("%.2f%%", pct),
	}
}
