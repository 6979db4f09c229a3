// application/services/scanner/schedule.go
package scanner

import (
	"context"
	"time"

	"entry-zone-bot/application/scheduler"
	"entry-zone-bot/internal/core/domain/scans"
	"entry-zone-bot/pkg/logger"
)

// UpdateSchedule снимает все задачи auto_scan и, если бот активен,
// ставит новую с интервалом текущего режима. Возвращает текст статуса.
func (s *Service) UpdateSchedule(chatID int64) string {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	return s.updateScheduleLocked(chatID, s.cfg.FirstRunDelay)
}

// SetActive включает или ставит на паузу автоматическое сканирование
func (s *Service) SetActive(ctx context.Context, chatID int64, active bool) string {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	if _, err := s.state.SetActive(ctx, active); err != nil {
		logger.Warn("⚠️ Не удалось сохранить состояние бота: %v", err)
	}
	return s.updateScheduleLocked(chatID, s.cfg.FirstRunDelay)
}

// correctSchedule: если интервал задачи не совпадает с режимом по часам - перепланировать.
// Текущий цикл продолжается, следующий запуск через новый интервал.
func (s *Service) correctSchedule(chatID int64, job *scheduler.Job) {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	// задачу могли заменить, пока цикл ждал блокировку
	if job.Cancelled() || !s.state.Active() {
		return
	}

	decision := s.cfg.Policy.Resolve(s.now())
	if absDuration(job.Interval()-decision.Interval) <= s.cfg.Tolerance {
		return
	}

	logger.Info("🔄 Cambio de horario detectado (%v -> %v). Ajustando frecuencia...",
		job.Interval(), decision.Interval)
	s.updateScheduleLocked(chatID, decision.Interval)
}

func (s *Service) updateScheduleLocked(chatID int64, first time.Duration) string {
	for _, job := range s.scheduler.JobsByName(JobName) {
		job.Cancel()
	}

	if !s.state.Active() {
		logger.Info("⏸️ Escaneo automático detenido")
		return MsgPaused
	}

	decision := s.cfg.Policy.Resolve(s.now())
	_, err := s.scheduler.RunRepeating(JobName, decision.Interval, first, func(ctx context.Context) error {
		return s.RunCycle(ctx, Request{ChatID: chatID, Trigger: scans.TriggerTimer})
	})
	if err != nil {
		logger.Error("❌ No se pudo programar %s: %v", JobName, err)
		return decision.Label
	}

	logger.Info("🕒 %s: %s para chat %d", JobName, decision.Label, chatID)
	return decision.Label
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
