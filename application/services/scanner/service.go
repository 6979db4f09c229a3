// application/services/scanner/service.go
package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entry-zone-bot/application/scheduler"
	"entry-zone-bot/internal/core/domain/market"
	"entry-zone-bot/internal/core/domain/scans"
	"entry-zone-bot/internal/core/domain/schedule"
	"entry-zone-bot/internal/core/domain/setups"
	"entry-zone-bot/internal/delivery/telegram/app/bot/formatters"
	"entry-zone-bot/pkg/logger"

	"github.com/google/uuid"
)

// JobName имя повторяющейся задачи сканирования
const JobName = "auto_scan"

// Тексты ответов
const (
	MsgNoRows   = "⚠️ CSV Vacío."
	MsgNoQuotes = "❌ Error Binance."
	MsgPaused   = "Bot Pausado ⏸️"
)

// Request параметры одного цикла
type Request struct {
	ChatID  int64
	Trigger scans.Trigger
}

// Config настройки сервиса
type Config struct {
	Policy        schedule.Policy
	Tolerance     time.Duration // допуск сравнения интервалов
	FirstRunDelay time.Duration // задержка первого запуска после (пере)планирования
}

// Dependencies зависимости сервиса
type Dependencies struct {
	Source     setups.Source
	Normalizer *setups.Normalizer // может быть nil
	Quotes     market.QuoteProvider
	Sender     Sender
	Scheduler  JobScheduler
	State      *schedule.State
	Formatters *formatters.FormatterProvider
	Journal    scans.Journal    // может быть nil
	Clock      func() time.Time // может быть nil
}

// Service оркестратор сканирования: загрузка строк, котировки, отчеты, расписание
type Service struct {
	cfg        Config
	source     setups.Source
	normalizer *setups.Normalizer
	quotes     market.QuoteProvider
	sender     Sender
	scheduler  JobScheduler
	state      *schedule.State
	formatters *formatters.FormatterProvider
	journal    scans.Journal
	now        func() time.Time

	// единственный писатель для пары "состояние + задача auto_scan"
	scheduleMu sync.Mutex
}

// NewService создает сервис сканирования
func NewService(cfg Config, deps Dependencies) (*Service, error) {
	if deps.Source == nil || deps.Quotes == nil || deps.Sender == nil || deps.Scheduler == nil {
		return nil, fmt.Errorf("scanner: source, quotes, sender and scheduler are required")
	}
	if err := cfg.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("scanner: %w", err)
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = time.Second
	}
	if cfg.FirstRunDelay < 0 {
		cfg.FirstRunDelay = 0
	}

	state := deps.State
	if state == nil {
		state = schedule.NewState(nil)
	}
	fp := deps.Formatters
	if fp == nil {
		fp = formatters.NewFormatterProvider(formatters.DefaultChunkLimit)
	}
	normalizer := deps.Normalizer
	if normalizer == nil {
		normalizer = setups.NewNormalizer(nil, "")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		cfg:        cfg,
		source:     deps.Source,
		normalizer: normalizer,
		quotes:     deps.Quotes,
		sender:     deps.Sender,
		scheduler:  deps.Scheduler,
		state:      state,
		formatters: fp,
		journal:    deps.Journal,
		now:        clock,
	}, nil
}

// RunManual цикл по кнопке "VER AHORA": ответы о пустых данных уходят в чат
func (s *Service) RunManual(ctx context.Context, chatID int64) error {
	return s.RunCycle(ctx, Request{ChatID: chatID, Trigger: scans.TriggerManual})
}

// IsActive включено ли автосканирование
func (s *Service) IsActive() bool {
	return s.state.Active()
}

// StatusLabel текущий режим или "Bot Pausado ⏸️"
func (s *Service) StatusLabel() string {
	if !s.state.Active() {
		return MsgPaused
	}
	return s.CurrentDecision().Label
}

// Policy политика расписания
func (s *Service) Policy() schedule.Policy {
	return s.cfg.Policy
}

// CurrentDecision текущий режим расписания
func (s *Service) CurrentDecision() schedule.Decision {
	return s.cfg.Policy.Resolve(s.now())
}

// RunCycle выполняет один цикл сканирования.
// Ошибку возвращает только при сбое отправки; остальное - штатные исходы цикла.
func (s *Service) RunCycle(ctx context.Context, req Request) error {
	record := scans.CycleRecord{
		RunID:     uuid.New(),
		ChatID:    req.ChatID,
		Trigger:   req.Trigger,
		StartedAt: s.now(),
	}
	defer s.finish(ctx, &record)

	if job, ok := scheduler.JobFromContext(ctx); ok {
		record.Interval = job.Interval()
		if req.Trigger == scans.TriggerTimer && s.state.Active() {
			s.correctSchedule(req.ChatID, job)
		}
	}

	rows, err := s.source.LoadPending(ctx)
	if err != nil || len(rows) == 0 {
		record.Outcome = scans.OutcomeNoRows
		if err != nil {
			record.Error = err.Error()
		}
		if req.Trigger == scans.TriggerManual {
			return s.reply(req.ChatID, MsgNoRows, &record)
		}
		logger.Info("ℹ️ [%s] CSV vacío (%v)", record.RunID.String()[:8], err)
		return nil
	}
	record.Rows = len(rows)

	symbols := setups.DistinctSymbols(rows)
	record.Symbols = len(symbols)

	quotes := s.quotes.GetMarketQuotes(ctx, symbols)
	record.Quotes = len(quotes)
	if len(quotes) == 0 {
		record.Outcome = scans.OutcomeNoQuotes
		record.Error = market.ErrNoQuotes.Error()
		if req.Trigger == scans.TriggerManual {
			return s.reply(req.ChatID, MsgNoQuotes, &record)
		}
		logger.Warn("⚠️ [%s] Binance sin datos para %d símbolos", record.RunID.String()[:8], len(symbols))
		return nil
	}

	report := s.formatters.BuildReport(rows, quotes)
	record.MainChunks = len(report.MainChunks)
	record.FireZoneChunks = len(report.FireZoneChunks)
	record.Hits = toHitRecords(report.Hits)

	if err := s.dispatch(req.ChatID, report); err != nil {
		record.Outcome = scans.OutcomeDispatchError
		record.Error = err.Error()
		logger.Error("❌ Error Telegram: %v", err)
		return err
	}

	record.Outcome = scans.OutcomeSent
	logger.Info("✅ [%s] Mensajes enviados (%d filas, %d en zona)",
		record.RunID.String()[:8], len(rows), len(report.Hits))
	return nil
}

// dispatch: сначала основной отчет, потом зона выстрела без превью ссылок.
// Первая ошибка прерывает отправку, повтора нет.
func (s *Service) dispatch(chatID int64, report formatters.Report) error {
	for i, chunk := range report.MainChunks {
		if err := s.sender.SendReportMessage(chatID, chunk, false); err != nil {
			return fmt.Errorf("send main table chunk %d/%d: %w", i+1, len(report.MainChunks), err)
		}
	}
	for i, chunk := range report.FireZoneChunks {
		if err := s.sender.SendReportMessage(chatID, chunk, true); err != nil {
			return fmt.Errorf("send fire zone chunk %d/%d: %w", i+1, len(report.FireZoneChunks), err)
		}
	}
	return nil
}

func (s *Service) reply(chatID int64, text string, record *scans.CycleRecord) error {
	if err := s.sender.SendTextMessage(chatID, text, nil); err != nil {
		record.Outcome = scans.OutcomeDispatchError
		record.Error = err.Error()
		logger.Error("❌ Error Telegram: %v", err)
		return err
	}
	return nil
}

func (s *Service) finish(ctx context.Context, record *scans.CycleRecord) {
	record.FinishedAt = s.now()
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordCycle(ctx, *record); err != nil {
		logger.Warn("⚠️ Не удалось записать цикл %s в журнал: %v", record.RunID, err)
	}
}

func toHitRecords(hits []formatters.FireZoneHit) []scans.HitRecord {
	if len(hits) == 0 {
		return nil
	}
	out := make([]scans.HitRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, scans.HitRecord{
			RowOrdinal: h.Row.RowOrdinal,
			Symbol:     h.Row.Symbol,
			EntryRaw:   h.Row.EntryRaw,
			Price:      h.Price,
			Distance:   h.Distance,
			Tier:       h.Severity.Tier.String(),
		})
	}
	return out
}
