// internal/core/domain/setups/row.go
package setups

import (
	"context"
	"errors"
	"sort"
)

// ErrNoPendingRows - в источниках нет ни одной отложенной операции
var ErrNoPendingRows = errors.New("no pending setups")

// TradeSetupRow одна отложенная торговая идея из таблицы
type TradeSetupRow struct {
	Symbol     string  `json:"symbol"`
	EntryMin   float64 `json:"entry_min"`
	EntryMax   float64 `json:"entry_max"`
	EntryRaw   string  `json:"entry_raw"`
	Direction  string  `json:"direction,omitempty"`
	SetupLabel string  `json:"setup,omitempty"`
	RiskLabel  string  `json:"risk,omitempty"`
	ChartLink  string  `json:"chart,omitempty"`
	RowOrdinal int     `json:"row"`
	Status     string  `json:"status"`
	SourceFile string  `json:"source_file,omitempty"`
}

// Band возвращает зону входа строки
func (r TradeSetupRow) Band() EntryBand {
	return EntryBand{Min: r.EntryMin, Max: r.EntryMax}
}

// Source источник отложенных операций (CSV, БД и т.д.)
type Source interface {
	LoadPending(ctx context.Context) ([]TradeSetupRow, error)
}

// DistinctSymbols возвращает уникальные символы в порядке первого появления
func DistinctSymbols(rows []TradeSetupRow) []string {
	seen := make(map[string]struct{}, len(rows))
	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Symbol]; ok {
			continue
		}
		seen[row.Symbol] = struct{}{}
		symbols = append(symbols, row.Symbol)
	}
	return symbols
}

// SortByOrdinal стабильно сортирует строки по номеру строки в таблице
func SortByOrdinal(rows []TradeSetupRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RowOrdinal < rows[j].RowOrdinal
	})
}
