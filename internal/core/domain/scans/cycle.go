// internal/core/domain/scans/cycle.go
package scans

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Trigger источник запуска цикла сканирования
type Trigger string

const (
	TriggerManual Trigger = "manual" // кнопка "👀 VER AHORA"
	TriggerTimer  Trigger = "timer"  // задача auto_scan
)

// Outcome итог цикла
type Outcome string

const (
	OutcomeSent          Outcome = "sent"
	OutcomeNoRows        Outcome = "no_rows"
	OutcomeNoQuotes      Outcome = "no_quotes"
	OutcomeDispatchError Outcome = "dispatch_error"
)

// CycleRecord запись журнала об одном цикле
type CycleRecord struct {
	RunID          uuid.UUID
	ChatID         int64
	Trigger        Trigger
	Outcome        Outcome
	Interval       time.Duration // интервал расписания в момент запуска (0 для ручного)
	Rows           int
	Symbols        int
	Quotes         int
	MainChunks     int
	FireZoneChunks int
	Error          string
	StartedAt      time.Time
	FinishedAt     time.Time
	Hits           []HitRecord
}

// HitRecord строка, попавшая в зону выстрела
type HitRecord struct {
	RowOrdinal int
	Symbol     string
	EntryRaw   string
	Price      float64
	Distance   float64
	Tier       string
}

// Journal журнал циклов сканирования
type Journal interface {
	RecordCycle(ctx context.Context, record CycleRecord) error
}
