// pkg/logger/global.go
package logger

import "sync"

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	fallbackOnce sync.Once
	fallback     *Logger
)

func InitGlobal(logPath, logLevel string, debug bool) error {
	l, err := NewLogger(logPath, logLevel, debug)
	if err != nil {
		return err
	}
	SetGlobal(l)
	return nil
}

// SetGlobal подменяет глобальный логгер (тесты, кастомный writer)
func SetGlobal(l *Logger) {
	globalMu.Lock()
	prev := globalLogger
	globalLogger = l
	globalMu.Unlock()

	if prev != nil && prev != l {
		prev.Close()
	}
}

func GetLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()

	if l != nil {
		return l
	}
	// Fallback к консольному логгеру
	fallbackOnce.Do(func() { fallback = newConsoleLogger() })
	return fallback
}

// Close закрывает файл глобального логгера
func Close() {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()

	if l != nil {
		l.Close()
	}
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	GetLogger().Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}
