// internal/infrastructure/api/exchanges/binance/cached_provider.go
package binance

import (
	"context"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/pkg/logger"
)

// TickerCache живой кэш котировок (websocket)
type TickerCache interface {
	// Snapshot возвращает котировки, если кэш можно считать актуальным для этих символов
	Snapshot(symbols []string) (map[string]market.Quote, bool)
}

// CachedProvider отдает котировки из живого кэша, иначе ходит в REST
type CachedProvider struct {
	rest  market.QuoteProvider
	cache TickerCache
}

// NewCachedProvider создает провайдер; cache может быть nil
func NewCachedProvider(rest market.QuoteProvider, cache TickerCache) *CachedProvider {
	return &CachedProvider{rest: rest, cache: cache}
}

// GetMarketQuotes реализует market.QuoteProvider
func (p *CachedProvider) GetMarketQuotes(ctx context.Context, symbols []string) map[string]market.Quote {
	if p.cache != nil {
		if quotes, ok := p.cache.Snapshot(symbols); ok {
			logger.Debug("⚡ Котировки из WS-кэша: %d", len(quotes))
			return quotes
		}
	}
	return p.rest.GetMarketQuotes(ctx, symbols)
}
