// internal/infrastructure/persistence/postgres/models/scan_cycle.go
package models

import (
	"time"

	"entry-zone-bot/internal/core/domain/scans"

	"github.com/google/uuid"
)

// ScanCycle строка таблицы scan_cycles
type ScanCycle struct {
	RunID           uuid.UUID `db:"run_id"`
	ChatID          int64     `db:"chat_id"`
	TriggerSource   string    `db:"trigger_source"`
	Outcome         string    `db:"outcome"`
	IntervalSeconds int       `db:"interval_seconds"`
	RowsCount       int       `db:"rows_count"`
	SymbolsCount    int       `db:"symbols_count"`
	QuotesCount     int       `db:"quotes_count"`
	MainChunks      int       `db:"main_chunks"`
	FireZoneChunks  int       `db:"fire_zone_chunks"`
	Error           string    `db:"error"`
	StartedAt       time.Time `db:"started_at"`
	FinishedAt      time.Time `db:"finished_at"`
}

// FireZoneHit строка таблицы fire_zone_hits
type FireZoneHit struct {
	ID         int64     `db:"id"`
	RunID      uuid.UUID `db:"run_id"`
	RowOrdinal int       `db:"row_ordinal"`
	Symbol     string    `db:"symbol"`
	EntryRaw   string    `db:"entry_raw"`
	Price      float64   `db:"price"`
	Distance   float64   `db:"distance"`
	Tier       string    `db:"tier"`
}

// NewScanCycle переводит запись журнала в модель таблицы
func NewScanCycle(record scans.CycleRecord) ScanCycle {
	return ScanCycle{
		RunID:           record.RunID,
		ChatID:          record.ChatID,
		TriggerSource:   string(record.Trigger),
		Outcome:         string(record.Outcome),
		IntervalSeconds: int(record.Interval / time.Second),
		RowsCount:       record.Rows,
		SymbolsCount:    record.Symbols,
		QuotesCount:     record.Quotes,
		MainChunks:      record.MainChunks,
		FireZoneChunks:  record.FireZoneChunks,
		Error:           record.Error,
		StartedAt:       record.StartedAt.UTC(),
		FinishedAt:      record.FinishedAt.UTC(),
	}
}

// NewFireZoneHits модели попаданий цикла
func NewFireZoneHits(runID uuid.UUID, hits []scans.HitRecord) []FireZoneHit {
	out := make([]FireZoneHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, FireZoneHit{
			RunID:      runID,
			RowOrdinal: h.RowOrdinal,
			Symbol:     h.Symbol,
			EntryRaw:   h.EntryRaw,
			Price:      h.Price,
			Distance:   h.Distance,
			Tier:       h.Tier,
		})
	}
	return out
}
