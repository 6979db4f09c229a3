package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"entry-zone-bot/internal/core/domain/market"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestWatcher(maxAge time.Duration) (*TickerWatcher, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	w := NewTickerWatcher("ws://unused", maxAge)
	w.now = clock.Now
	return w, clock
}

func TestSnapshotRequiresMessages(t *testing.T) {
	w, _ := newTestWatcher(time.Minute)

	_, ok := w.Snapshot([]string{"BTCUSDT"})
	assert.False(t, ok)
}

func TestSnapshotServesFreshQuotes(t *testing.T) {
	w, clock := newTestWatcher(time.Minute)
	w.connectedAt = clock.Now()

	w.apply([]wsTickerEvent{
		{Symbol: "BTCUSDT", LastPrice: "60000.5", PriceChangePercent: "1.5", PriceChange: "900"},
		{Symbol: "ETHUSDT", LastPrice: "bad", PriceChangePercent: "1", PriceChange: "1"},
	})

	quotes, ok := w.Snapshot([]string{"BTCUSDT"})
	require.True(t, ok)
	assert.Equal(t, market.Quote{Price: 60000.5, ChangePercent: 1.5, ChangeValue: 900}, quotes["BTCUSDT"])
	assert.Equal(t, 1, w.Len())

	// кэш еще прогревается, ETH неизвестен
	_, ok = w.Snapshot([]string{"BTCUSDT", "ETHUSDT"})
	assert.False(t, ok)
}

func TestSnapshotAfterWarmupSkipsUnknownSymbols(t *testing.T) {
	w, clock := newTestWatcher(time.Minute)
	w.connectedAt = clock.Now()
	clock.Advance(2 * time.Minute)

	w.apply([]wsTickerEvent{{Symbol: "BTCUSDT", LastPrice: "1", PriceChangePercent: "0", PriceChange: "0"}})

	quotes, ok := w.Snapshot([]string{"BTCUSDT", "NOPEUSDT"})
	require.True(t, ok)
	assert.Len(t, quotes, 1)

	_, ok = w.Snapshot([]string{"NOPEUSDT"})
	assert.False(t, ok)
}

func TestSnapshotRejectsStaleSymbol(t *testing.T) {
	w, clock := newTestWatcher(time.Minute)
	w.connectedAt = clock.Now()

	w.apply([]wsTickerEvent{{Symbol: "BTCUSDT", LastPrice: "60000", PriceChangePercent: "0", PriceChange: "0"}})

	// поток жив за счет ETH, BTC больше не приходит
	for i := 0; i < 360; i++ {
		clock.Advance(time.Minute)
		w.apply([]wsTickerEvent{{Symbol: "ETHUSDT", LastPrice: "3000", PriceChangePercent: "0", PriceChange: "0"}})
	}

	_, ok := w.Snapshot([]string{"BTCUSDT"})
	assert.False(t, ok)

	_, ok = w.Snapshot([]string{"ETHUSDT", "BTCUSDT"})
	assert.False(t, ok)

	quotes, ok := w.Snapshot([]string{"ETHUSDT"})
	require.True(t, ok)
	assert.Equal(t, 3000.0, quotes["ETHUSDT"].Price)
}

func TestSnapshotStaleStream(t *testing.T) {
	w, clock := newTestWatcher(time.Minute)
	w.connectedAt = clock.Now()
	w.apply([]wsTickerEvent{{Symbol: "BTCUSDT", LastPrice: "1", PriceChangePercent: "0", PriceChange: "0"}})

	clock.Advance(61 * time.Second)

	_, ok := w.Snapshot([]string{"BTCUSDT"})
	assert.False(t, ok)
}

func TestWatcherReadsStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()

		ctx := r.Context()
		_ = conn.Write(ctx, websocket.MessageText, []byte(`{"result":null,"id":1}`))
		_ = wsjson.Write(ctx, conn, []wsTickerEvent{
			{EventType: "24hrTicker", Symbol: "BTCUSDT", LastPrice: "61000", PriceChangePercent: "-0.5", PriceChange: "-300"},
			{EventType: "24hrTicker", Symbol: "SOLUSDT", LastPrice: "150.25", PriceChangePercent: "2", PriceChange: "3"},
		})
		<-ctx.Done()
	}))
	defer srv.Close()

	w := NewTickerWatcher("ws"+strings.TrimPrefix(srv.URL, "http"), time.Minute)
	w.Start()
	defer w.Stop()

	require.Eventually(t, func() bool { return w.Len() == 2 }, 5*time.Second, 10*time.Millisecond)

	quotes, ok := w.Snapshot([]string{"BTCUSDT", "SOLUSDT"})
	require.True(t, ok)
	assert.InDelta(t, 150.25, quotes["SOLUSDT"].Price, 1e-9)
	assert.InDelta(t, -0.5, quotes["BTCUSDT"].ChangePercent, 1e-9)
}

func TestStopIsIdempotent(t *testing.T) {
	w := NewTickerWatcher("ws://127.0.0.1:1/ws", time.Minute)
	w.Start()
	w.Stop()
	w.Stop()
}
