// internal/delivery/telegram/app/bot/polling.go
package bot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
	"entry-zone-bot/pkg/logger"
)

// PollingClient - клиент для polling обновлений
type PollingClient struct {
	bot           *TelegramBot
	updates       UpdatesSource
	timeout       int
	retryInterval time.Duration

	offset  int
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPollingClient создает новый polling клиент
func NewPollingClient(bot *TelegramBot, updates UpdatesSource, timeout int, retryInterval time.Duration) *PollingClient {
	return &PollingClient{
		bot:           bot,
		updates:       updates,
		timeout:       timeout,
		retryInterval: retryInterval,
	}
}

// Start запускает polling обновлений
func (pc *PollingClient) Start() error {
	if !pc.running.CompareAndSwap(false, true) {
		return fmt.Errorf("polling already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	pc.cancel = cancel

	logger.Info("🔄 Starting Telegram bot polling...")
	pc.wg.Add(1)
	go pc.pollLoop(ctx)
	return nil
}

// Stop останавливает polling и ждет выхода из цикла
func (pc *PollingClient) Stop() {
	if !pc.running.CompareAndSwap(true, false) {
		return
	}
	pc.cancel()
	pc.wg.Wait()
	logger.Info("🛑 Stopping Telegram bot polling...")
}

// IsRunning работает ли цикл
func (pc *PollingClient) IsRunning() bool {
	return pc.running.Load()
}

// pollLoop основной цикл polling
func (pc *PollingClient) pollLoop(ctx context.Context) {
	defer pc.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		updates, err := pc.updates.GetUpdates(ctx, pc.offset, pc.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("❌ Error fetching updates: %v", err)
			select {
			case <-time.After(pc.retryInterval):
			case <-ctx.Done():
				return
			}
			continue
		}

		for i := range updates {
			pc.processUpdate(ctx, &updates[i])
			pc.offset = updates[i].UpdateID + 1
		}
	}
}

// processUpdate обрабатывает одно обновление; паника не останавливает цикл
func (pc *PollingClient) processUpdate(ctx context.Context, update *telegram.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("❌ Panic handling update %d: %v", update.UpdateID, r)
		}
	}()

	if err := pc.bot.HandleUpdate(ctx, update); err != nil {
		logger.Error("❌ Error handling update %d: %v", update.UpdateID, err)
	}
}
