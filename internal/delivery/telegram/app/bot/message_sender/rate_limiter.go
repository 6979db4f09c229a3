// internal/delivery/telegram/app/bot/message_sender/rate_limiter.go
package message_sender

import (
	"sync"
	"time"
)

// RateLimiter выдерживает минимальный интервал между отправками
type RateLimiter struct {
	interval time.Duration
	lastSend time.Time
	mu       sync.Mutex
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewRateLimiter создает новый ограничитель
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		lastSend: time.Now().Add(-interval), // можно отправлять сразу
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// CanSend проверяет, можно ли отправлять сообщение прямо сейчас
func (rl *RateLimiter) CanSend() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.now().Sub(rl.lastSend) >= rl.interval
}

// Wait блокирует до истечения интервала и резервирует слот
func (rl *RateLimiter) Wait() {
	if rl.interval <= 0 {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if wait := rl.interval - rl.now().Sub(rl.lastSend); wait > 0 {
		rl.sleep(wait)
	}
	rl.lastSend = rl.now()
}
