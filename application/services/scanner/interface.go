// application/services/scanner/interface.go
package scanner

import (
	"context"
	"time"

	"entry-zone-bot/application/scheduler"
)

// Sender отправка сообщений в чат
type Sender interface {
	SendTextMessage(chatID int64, text string, keyboard interface{}) error
	SendReportMessage(chatID int64, text string, disablePreview bool) error
}

// JobScheduler повторяющиеся задачи по имени
type JobScheduler interface {
	RunRepeating(name string, interval, first time.Duration, handler func(ctx context.Context) error) (*scheduler.Job, error)
	JobsByName(name string) []*scheduler.Job
}
