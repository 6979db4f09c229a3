package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"entry-zone-bot/internal/core/domain/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickersJSON = `[
 {"symbol":"BTCUSDT","priceChange":"-1200.50","priceChangePercent":"-1.95","lastPrice":"60500.10","volume":"1","quoteVolume":"2","closeTime":1},
 {"symbol":"ETHUSDT","priceChange":"10","priceChangePercent":"0.40","lastPrice":"2500","volume":"1","quoteVolume":"2","closeTime":1},
 {"symbol":"BADUSDT","priceChange":"x","priceChangePercent":"1","lastPrice":"oops","volume":"1","quoteVolume":"2","closeTime":1},
 {"symbol":"SOLUSDT","priceChange":"1","priceChangePercent":"1","lastPrice":"150","volume":"1","quoteVolume":"2","closeTime":1}
]`

func newTickerServer(t *testing.T, status int, body string, delay time.Duration) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, tickerPath, r.URL.Path)
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGetMarketQuotesFiltersRequestedSymbols(t *testing.T) {
	srv, _ := newTickerServer(t, http.StatusOK, tickersJSON, 0)
	c := NewBinanceClient(srv.URL+"/", time.Second)

	quotes := c.GetMarketQuotes(context.Background(), []string{"BTCUSDT", "ETHUSDT", "BADUSDT", "XRPUSDT"})

	require.Len(t, quotes, 2)
	assert.Equal(t, market.Quote{Price: 60500.10, ChangePercent: -1.95, ChangeValue: -1200.50}, quotes["BTCUSDT"])
	assert.InDelta(t, 2500, quotes["ETHUSDT"].Price, 1e-9)
	assert.NotContains(t, quotes, "SOLUSDT")
	assert.NotContains(t, quotes, "BADUSDT")
}

func TestGetMarketQuotesEmptyOnHTTPError(t *testing.T) {
	srv, _ := newTickerServer(t, http.StatusTeapot, "{}", 0)
	c := NewBinanceClient(srv.URL, time.Second)

	assert.Empty(t, c.GetMarketQuotes(context.Background(), []string{"BTCUSDT"}))
}

func TestGetMarketQuotesEmptyOnBadJSON(t *testing.T) {
	srv, _ := newTickerServer(t, http.StatusOK, "not json", 0)
	c := NewBinanceClient(srv.URL, time.Second)

	assert.Empty(t, c.GetMarketQuotes(context.Background(), []string{"BTCUSDT"}))
}

func TestGetMarketQuotesAppliesTimeout(t *testing.T) {
	srv, _ := newTickerServer(t, http.StatusOK, tickersJSON, 2*time.Second)
	c := NewBinanceClient(srv.URL, 50*time.Millisecond)

	start := time.Now()
	quotes := c.GetMarketQuotes(context.Background(), []string{"BTCUSDT"})

	assert.Empty(t, quotes)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGetMarketQuotesSkipsRequestWithoutSymbols(t *testing.T) {
	srv, hits := newTickerServer(t, http.StatusOK, tickersJSON, 0)
	c := NewBinanceClient(srv.URL, time.Second)

	assert.Empty(t, c.GetMarketQuotes(context.Background(), nil))
	assert.Zero(t, hits.Load())
}

type stubCache struct {
	quotes map[string]market.Quote
	ok     bool
}

func (s stubCache) Snapshot([]string) (map[string]market.Quote, bool) { return s.quotes, s.ok }

func TestCachedProviderPrefersFreshCache(t *testing.T) {
	srv, hits := newTickerServer(t, http.StatusOK, tickersJSON, 0)
	rest := NewBinanceClient(srv.URL, time.Second)

	cached := map[string]market.Quote{"BTCUSDT": {Price: 1}}
	p := NewCachedProvider(rest, stubCache{quotes: cached, ok: true})
	assert.Equal(t, cached, p.GetMarketQuotes(context.Background(), []string{"BTCUSDT"}))
	assert.Zero(t, hits.Load())

	p = NewCachedProvider(rest, stubCache{ok: false})
	assert.InDelta(t, 60500.10, p.GetMarketQuotes(context.Background(), []string{"BTCUSDT"})["BTCUSDT"].Price, 1e-9)
	assert.Equal(t, int32(1), hits.Load())

	p = NewCachedProvider(rest, nil)
	assert.Len(t, p.GetMarketQuotes(context.Background(), []string{"BTCUSDT"}), 1)
}
