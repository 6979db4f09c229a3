// internal/infrastructure/api/exchanges/binance/ws/ticker_watcher.go
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/pkg/logger"

	"github.com/coder/websocket"
)

const (
	// DefaultStreamURL - все 24h тикеры USDT-M фьючерсов одним потоком
	DefaultStreamURL = "wss://fstream.binance.com/ws/!ticker@arr"
	// DefaultMaxAge - сколько поток может молчать, прежде чем кэш считается устаревшим
	DefaultMaxAge = 2 * time.Minute

	initialRetryDelay = 2 * time.Second
	maxRetryDelay     = 60 * time.Second
)

type cachedQuote struct {
	quote     market.Quote
	updatedAt time.Time
}

// TickerWatcher держит WS-соединение с Binance и кэширует последние котировки
type TickerWatcher struct {
	url    string
	maxAge time.Duration
	now    func() time.Time

	mu          sync.RWMutex
	quotes      map[string]cachedQuote
	connectedAt time.Time
	lastMessage time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTickerWatcher создает наблюдатель тикеров
func NewTickerWatcher(url string, maxAge time.Duration) *TickerWatcher {
	if url == "" {
		url = DefaultStreamURL
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &TickerWatcher{
		url:    url,
		maxAge: maxAge,
		now:    time.Now,
		quotes: make(map[string]cachedQuote),
		stopCh: make(chan struct{}),
	}
}

// Start запускает горутину соединения с авто-переподключением
func (w *TickerWatcher) Start() {
	w.wg.Add(1)
	go w.connectLoop()
	logger.Info("🌊 TickerWatcher: запущен (%s)", w.url)
}

// Stop останавливает соединение и ждет завершения горутин
func (w *TickerWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	logger.Info("🛑 TickerWatcher: остановлен")
}

// Snapshot возвращает котировки для символов из кэша.
// ok=false, если поток молчит дольше maxAge, кэш еще прогревается
// и какого-то символа в нем нет, или котировка символа старше maxAge.
func (w *TickerWatcher) Snapshot(symbols []string) (map[string]market.Quote, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	now := w.now()
	if w.lastMessage.IsZero() || now.Sub(w.lastMessage) > w.maxAge {
		return nil, false
	}

	warm := now.Sub(w.connectedAt) >= w.maxAge
	quotes := make(map[string]market.Quote, len(symbols))
	for _, symbol := range symbols {
		cached, found := w.quotes[symbol]
		if !found {
			if !warm {
				return nil, false
			}
			continue
		}
		// !ticker@arr шлет только изменившиеся тикеры
		if now.Sub(cached.updatedAt) > w.maxAge {
			return nil, false
		}
		quotes[symbol] = cached.quote
	}
	if len(quotes) == 0 {
		return nil, false
	}
	return quotes, true
}

// Len количество символов в кэше
func (w *TickerWatcher) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.quotes)
}

func (w *TickerWatcher) connectLoop() {
	defer w.wg.Done()

	retryDelay := initialRetryDelay
	for {
		select {
		case <-w.stopCh:
			return
		default:
		}

		err := w.runConnection()
		if err == nil {
			retryDelay = initialRetryDelay
			continue
		}

		select {
		case <-w.stopCh:
			return
		default:
		}
		logger.Warn("⚠️ TickerWatcher: соединение прервано: %v, повтор через %v", err, retryDelay)
		select {
		case <-time.After(retryDelay):
		case <-w.stopCh:
			return
		}
		retryDelay = minDuration(retryDelay*2, maxRetryDelay)
	}
}

func (w *TickerWatcher) runConnection() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	conn, _, err := websocket.Dial(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("ошибка подключения: %w", err)
	}
	defer conn.CloseNow()
	// полный снимок !ticker@arr заметно больше лимита по умолчанию (32KB)
	conn.SetReadLimit(8 << 20)

	w.mu.Lock()
	w.connectedAt = w.now()
	w.mu.Unlock()
	logger.Info("✅ TickerWatcher: WS-соединение установлено")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return fmt.Errorf("ошибка чтения: %w", err)
		}

		var events []wsTickerEvent
		if err := json.Unmarshal(data, &events); err != nil {
			logger.Debug("TickerWatcher: пропуск сообщения: %v", err)
			continue
		}
		w.apply(events)
	}
}

// apply обновляет кэш пачкой событий
func (w *TickerWatcher) apply(events []wsTickerEvent) {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastMessage = now
	for _, ev := range events {
		quote, err := ev.toQuote()
		if err != nil || ev.Symbol == "" {
			continue
		}
		w.quotes[ev.Symbol] = cachedQuote{quote: quote, updatedAt: now}
	}
}

func (ev wsTickerEvent) toQuote() (market.Quote, error) {
	price, err := strconv.ParseFloat(ev.LastPrice, 64)
	if err != nil {
		return market.Quote{}, err
	}
	pct, err := strconv.ParseFloat(ev.PriceChangePercent, 64)
	if err != nil {
		return market.Quote{}, err
	}
	change, err := strconv.ParseFloat(ev.PriceChange, 64)
	if err != nil {
		return market.Quote{}, err
	}
	return market.Quote{Price: price, ChangePercent: pct, ChangeValue: change}, nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
