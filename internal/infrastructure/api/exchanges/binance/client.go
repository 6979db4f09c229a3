// internal/infrastructure/api/exchanges/binance/client.go
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/pkg/logger"
)

const (
	// DefaultFuturesURL - USDT-M futures REST
	DefaultFuturesURL = "https://fapi.binance.com"
	// DefaultTimeout - предел одного запроса котировок
	DefaultTimeout = 20 * time.Second

	tickerPath = "/fapi/v1/ticker/24hr"
)

// BinanceClient - клиент для API Binance Futures
type BinanceClient struct {
	httpClient *http.Client
	futuresURL string
	timeout    time.Duration
}

// BinanceFuturesTickerResponse - ответ от Binance Futures API (нужные поля)
type BinanceFuturesTickerResponse struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	CloseTime          int64  `json:"closeTime"`
}

// NewBinanceClient создает нового клиента для Binance
func NewBinanceClient(futuresURL string, timeout time.Duration) *BinanceClient {
	if futuresURL == "" {
		futuresURL = DefaultFuturesURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &BinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		futuresURL: strings.TrimRight(futuresURL, "/"),
		timeout:    timeout,
	}
}

// GetMarketQuotes возвращает котировки только для запрошенных символов.
// Любая ошибка запроса - пустая карта и предупреждение в логе.
func (c *BinanceClient) GetMarketQuotes(ctx context.Context, symbols []string) map[string]market.Quote {
	quotes := make(map[string]market.Quote)
	if len(symbols) == 0 {
		return quotes
	}

	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[s] = struct{}{}
	}

	tickers, err := c.GetTickers(ctx)
	if err != nil {
		logger.Warn("⚠️ Error conexión Binance: %v", err)
		return quotes
	}

	for _, ticker := range tickers {
		if _, ok := wanted[ticker.Symbol]; !ok {
			continue
		}
		quote, err := ticker.toQuote()
		if err != nil {
			logger.Debug("Binance: пропуск %s: %v", ticker.Symbol, err)
			continue
		}
		quotes[ticker.Symbol] = quote
	}

	logger.Debug("📈 Binance: %d/%d котировок", len(quotes), len(wanted))
	return quotes
}

// GetTickers получает 24h тикеры всех фьючерсов
func (c *BinanceClient) GetTickers(ctx context.Context) ([]BinanceFuturesTickerResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.makeRequest(ctx, c.futuresURL+tickerPath)
	if err != nil {
		return nil, err
	}

	var tickers []BinanceFuturesTickerResponse
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("failed to parse binance futures response: %w", err)
	}
	return tickers, nil
}

func (t BinanceFuturesTickerResponse) toQuote() (market.Quote, error) {
	price, err := strconv.ParseFloat(t.LastPrice, 64)
	if err != nil {
		return market.Quote{}, fmt.Errorf("lastPrice %q: %w", t.LastPrice, err)
	}
	changePct, err := strconv.ParseFloat(t.PriceChangePercent, 64)
	if err != nil {
		return market.Quote{}, fmt.Errorf("priceChangePercent %q: %w", t.PriceChangePercent, err)
	}
	changeVal, err := strconv.ParseFloat(t.PriceChange, 64)
	if err != nil {
		return market.Quote{}, fmt.Errorf("priceChange %q: %w", t.PriceChange, err)
	}
	return market.Quote{Price: price, ChangePercent: changePct, ChangeValue: changeVal}, nil
}

// makeRequest выполняет HTTP запрос
func (c *BinanceClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "EntryZoneBot/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
