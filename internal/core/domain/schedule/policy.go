// internal/core/domain/schedule/policy.go
package schedule

import (
	"fmt"
	"time"
)

// DefaultTimezone часовой пояс расписания по умолчанию
const DefaultTimezone = "America/Argentina/Buenos_Aires"

// Mode режим автоматического расписания
type Mode string

const (
	ModeDay   Mode = "day"
	ModeNight Mode = "night"
)

// Policy параметры дневного/ночного расписания
type Policy struct {
	Location      *time.Location
	DayStartHour  int // включительно
	DayEndHour    int // исключительно
	DayInterval   time.Duration
	NightInterval time.Duration
}

// Decision результат расчета расписания
type Decision struct {
	Mode     Mode
	Interval time.Duration
	Label    string
}

// DefaultPolicy возвращает расписание 05:00-18:00 каждые 10 минут, иначе раз в час
func DefaultPolicy() Policy {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.FixedZone("ART", -3*60*60)
	}
	return Policy{
		Location:      loc,
		DayStartHour:  5,
		DayEndHour:    18,
		DayInterval:   10 * time.Minute,
		NightInterval: 60 * time.Minute,
	}
}

// Resolve определяет режим и интервал для момента now.
// Час берется в часовом поясе политики, результат пересчитывается при каждом вызове.
func (p Policy) Resolve(now time.Time) Decision {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	hour := now.In(loc).Hour()
	if hour >= p.DayStartHour && hour < p.DayEndHour {
		return Decision{
			Mode:     ModeDay,
			Interval: p.DayInterval,
			Label:    fmt.Sprintf("Modo Día ☀️ (%s)", shortDuration(p.DayInterval)),
		}
	}

	return Decision{
		Mode:     ModeNight,
		Interval: p.NightInterval,
		Label:    fmt.Sprintf("Modo Noche 🌙 (%s)", shortDuration(p.NightInterval)),
	}
}

// Validate проверяет корректность политики
func (p Policy) Validate() error {
	if p.DayStartHour < 0 || p.DayStartHour > 23 {
		return fmt.Errorf("day start hour out of range: %d", p.DayStartHour)
	}
	if p.DayEndHour < 1 || p.DayEndHour > 24 {
		return fmt.Errorf("day end hour out of range: %d", p.DayEndHour)
	}
	if p.DayStartHour >= p.DayEndHour {
		return fmt.Errorf("day start hour %d must be before day end hour %d", p.DayStartHour, p.DayEndHour)
	}
	if p.DayInterval <= 0 || p.NightInterval <= 0 {
		return fmt.Errorf("intervals must be positive (day=%v, night=%v)", p.DayInterval, p.NightInterval)
	}
	return nil
}

// shortDuration: 10m -> "10m", 60m -> "60m", 90s -> "1m30s"
func shortDuration(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return d.String()
}
