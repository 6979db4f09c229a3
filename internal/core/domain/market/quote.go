// internal/core/domain/market/quote.go
package market

import (
	"context"
	"errors"
)

// ErrNoQuotes биржа не вернула ни одной котировки
var ErrNoQuotes = errors.New("no market quotes")

// Quote котировка инструмента за 24 часа
type Quote struct {
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	ChangeValue   float64 `json:"change_value"`
}

// QuoteProvider источник котировок.
// Никогда не возвращает ошибку: при сбое - пустая карта.
// В результате только запрошенные символы.
type QuoteProvider interface {
	GetMarketQuotes(ctx context.Context, symbols []string) map[string]Quote
}

// Filter оставляет в quotes только symbols
func Filter(quotes map[string]Quote, symbols []string) map[string]Quote {
	out := make(map[string]Quote, len(symbols))
	for _, s := range symbols {
		if q, ok := quotes[s]; ok {
			out[s] = q
		}
	}
	return out
}
