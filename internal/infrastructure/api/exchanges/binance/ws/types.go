// internal/infrastructure/api/exchanges/binance/ws/types.go
package ws

// wsTickerEvent - элемент потока !ticker@arr (24hrTicker)
type wsTickerEvent struct {
	EventType          string `json:"e"`
	EventTime          int64  `json:"E"`
	Symbol             string `json:"s"`
	PriceChange        string `json:"p"`
	PriceChangePercent string `json:"P"`
	LastPrice          string `json:"c"`
}
