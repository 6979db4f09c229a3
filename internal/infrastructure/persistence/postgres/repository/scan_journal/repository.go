// internal/infrastructure/persistence/postgres/repository/scan_journal/repository.go
package scan_journal

import (
	"context"
	"fmt"

	"entry-zone-bot/internal/core/domain/scans"
	"entry-zone-bot/internal/infrastructure/persistence/postgres/models"
	"entry-zone-bot/pkg/logger"

	"github.com/jmoiron/sqlx"
)

const (
	insertCycleQuery = `
		INSERT INTO scan_cycles (
			run_id, chat_id, trigger_source, outcome, interval_seconds,
			rows_count, symbols_count, quotes_count, main_chunks, fire_zone_chunks,
			error, started_at, finished_at
		) VALUES (
			:run_id, :chat_id, :trigger_source, :outcome, :interval_seconds,
			:rows_count, :symbols_count, :quotes_count, :main_chunks, :fire_zone_chunks,
			:error, :started_at, :finished_at
		)`

	insertHitQuery = `
		INSERT INTO fire_zone_hits (run_id, row_ordinal, symbol, entry_raw, price, distance, tier)
		VALUES (:run_id, :row_ordinal, :symbol, :entry_raw, :price, :distance, :tier)`
)

// Repository журнал циклов в PostgreSQL
type Repository struct {
	db *sqlx.DB
}

// NewRepository создает репозиторий журнала
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// RecordCycle пишет цикл и его попадания одной транзакцией
func (r *Repository) RecordCycle(ctx context.Context, record scans.CycleRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ScanJournal.RecordCycle: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertCycleQuery, models.NewScanCycle(record)); err != nil {
		return fmt.Errorf("ScanJournal.RecordCycle: insert cycle: %w", err)
	}

	for _, hit := range models.NewFireZoneHits(record.RunID, record.Hits) {
		if _, err := tx.NamedExecContext(ctx, insertHitQuery, hit); err != nil {
			return fmt.Errorf("ScanJournal.RecordCycle: insert hit %s: %w", hit.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ScanJournal.RecordCycle: commit: %w", err)
	}

	logger.Debug("💾 Цикл %s записан в журнал (%s, попаданий: %d)", record.RunID, record.Outcome, len(record.Hits))
	return nil
}
