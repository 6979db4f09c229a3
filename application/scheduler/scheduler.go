// application/scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"entry-zone-bot/pkg/logger"
)

// DefaultRunTimeout предел длительности одного запуска задачи
const DefaultRunTimeout = 5 * time.Minute

// Schedule определяет расписание задачи
type Schedule struct {
	interval time.Duration
	first    time.Duration
}

// Every создает расписание "каждые N времени", первый запуск через interval
func Every(d time.Duration) Schedule {
	return Schedule{interval: d, first: d}
}

// StartingIn задает задержку первого запуска
func (s Schedule) StartingIn(first time.Duration) Schedule {
	if first < 0 {
		first = 0
	}
	s.first = first
	return s
}

// Interval возвращает интервал повторения
func (s Schedule) Interval() time.Duration {
	return s.interval
}

// Job описывает одну планируемую задачу
type Job struct {
	Name        string
	Description string
	Schedule    Schedule
	Handler     func(ctx context.Context) error

	scheduler *Scheduler
	done      chan struct{}
	cancel    sync.Once

	mu      sync.Mutex
	nextRun time.Time
	lastRun time.Time
	lastErr error
	runs    int
}

// Interval возвращает интервал повторения задачи
func (j *Job) Interval() time.Duration {
	return j.Schedule.interval
}

// Cancel снимает задачу с расписания.
// Не блокируется, повторный вызов ничего не делает. Можно вызывать из Handler самой задачи:
// текущий запуск доработает, следующих не будет.
func (j *Job) Cancel() {
	j.cancel.Do(func() {
		if j.done != nil {
			close(j.done)
		}
		if j.scheduler != nil {
			j.scheduler.remove(j)
		}
		logger.Debug("🗑️ [Scheduler] Задача %q снята с расписания", j.Name)
	})
}

// Cancelled сообщает, снята ли задача
func (j *Job) Cancelled() bool {
	if j.done == nil {
		return false
	}
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Status возвращает текущее состояние задачи
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobStatus{
		Name:        j.Name,
		Description: j.Description,
		Interval:    j.Schedule.interval,
		NextRun:     j.nextRun,
		LastRun:     j.lastRun,
		LastErr:     j.lastErr,
		Runs:        j.runs,
	}
}

// JobStatus снапшот состояния задачи
type JobStatus struct {
	Name        string
	Description string
	Interval    time.Duration
	NextRun     time.Time
	LastRun     time.Time
	LastErr     error
	Runs        int
}

type jobContextKey struct{}

// JobFromContext возвращает задачу, в рамках которой выполняется Handler
func JobFromContext(ctx context.Context) (*Job, bool) {
	job, ok := ctx.Value(jobContextKey{}).(*Job)
	return job, ok
}

// Scheduler управляет повторяющимися задачами приложения.
// У каждой задачи свой таймер; запуски одной задачи не пересекаются.
type Scheduler struct {
	jobs       []*Job
	mu         sync.RWMutex
	started    bool
	stopped    bool
	stopOnce   sync.Once
	stopChan   chan struct{}
	baseCtx    context.Context
	baseCancel context.CancelFunc
	runTimeout time.Duration
	wg         sync.WaitGroup
}

// New создает новый планировщик
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		stopChan:   make(chan struct{}),
		baseCtx:    ctx,
		baseCancel: cancel,
		runTimeout: DefaultRunTimeout,
	}
}

// SetRunTimeout задает предел длительности одного запуска
func (s *Scheduler) SetRunTimeout(d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	s.runTimeout = d
	s.mu.Unlock()
}

// Register добавляет задачу в планировщик.
// До Start() задача ждет запуска планировщика, после - стартует сразу.
func (s *Scheduler) Register(job *Job) error {
	if job == nil || job.Handler == nil {
		return fmt.Errorf("job handler is required")
	}
	if job.Schedule.interval <= 0 {
		return fmt.Errorf("job %q: interval must be positive", job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return fmt.Errorf("scheduler is stopped")
	}

	job.scheduler = s
	job.done = make(chan struct{})
	job.nextRun = time.Now().Add(job.Schedule.first)
	s.jobs = append(s.jobs, job)

	if s.started {
		s.spawn(job)
	}

	logger.Info("📋 [Scheduler] Зарегистрирована задача %q (каждые %v), первый запуск в %s",
		job.Name, job.Schedule.interval, job.nextRun.Format("15:04:05"))
	return nil
}

// RunRepeating регистрирует задачу name, повторяемую каждые interval, первый запуск через first
func (s *Scheduler) RunRepeating(name string, interval, first time.Duration, handler func(ctx context.Context) error) (*Job, error) {
	job := &Job{
		Name:     name,
		Schedule: Every(interval).StartingIn(first),
		Handler:  handler,
	}
	if err := s.Register(job); err != nil {
		return nil, err
	}
	return job, nil
}

// JobsByName возвращает активные задачи с указанным именем
func (s *Scheduler) JobsByName(name string) []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*Job
	for _, job := range s.jobs {
		if job.Name == name {
			found = append(found, job)
		}
	}
	return found
}

// Start запускает таймеры всех зарегистрированных задач
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true
	for _, job := range s.jobs {
		s.spawn(job)
	}
	logger.Info("✅ [Scheduler] Запущен (%d задач)", len(s.jobs))
}

// Stop останавливает планировщик и ждёт завершения текущих задач
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()

		close(s.stopChan)
		s.baseCancel()
	})
	s.wg.Wait()
	logger.Info("🛑 [Scheduler] Остановлен")
}

// Jobs возвращает статус всех активных задач
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.RLock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	statuses := make([]JobStatus, len(jobs))
	for i, j := range jobs {
		statuses[i] = j.Status()
	}
	return statuses
}

// spawn вызывается под s.mu
func (s *Scheduler) spawn(job *Job) {
	s.wg.Add(1)
	go s.loop(job)
}

func (s *Scheduler) remove(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, j := range s.jobs {
		if j == job {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return
		}
	}
}

// loop: таймер одной задачи
func (s *Scheduler) loop(job *Job) {
	defer s.wg.Done()

	job.mu.Lock()
	wait := time.Until(job.nextRun)
	job.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.run(job)
			if job.Cancelled() {
				return
			}
			job.mu.Lock()
			wait = time.Until(job.nextRun)
			job.mu.Unlock()
			timer.Reset(wait)
		case <-job.done:
			return
		case <-s.stopChan:
			return
		}
	}
}

// run выполняет одну задачу и обновляет её состояние
func (s *Scheduler) run(job *Job) {
	s.mu.RLock()
	timeout := s.runTimeout
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(s.baseCtx, timeout)
	defer cancel()
	ctx = context.WithValue(ctx, jobContextKey{}, job)

	logger.Debug("▶️  [Scheduler] Запуск задачи %q", job.Name)
	start := time.Now()

	err := s.safeCall(ctx, job)

	elapsed := time.Since(start)

	job.mu.Lock()
	job.lastRun = start
	job.lastErr = err
	job.runs++
	job.nextRun = time.Now().Add(job.Schedule.interval)
	nextRun := job.nextRun
	job.mu.Unlock()

	if err != nil {
		logger.Error("❌ [Scheduler] Задача %q завершилась с ошибкой за %v: %v", job.Name, elapsed, err)
	} else {
		logger.Debug("✅ [Scheduler] Задача %q выполнена за %v. Следующий запуск: %s",
			job.Name, elapsed, nextRun.Format("15:04:05"))
	}
}

func (s *Scheduler) safeCall(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in job %q: %v", job.Name, r)
		}
	}()
	return job.Handler(ctx)
}
