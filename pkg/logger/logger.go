// pkg/logger/logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Уровни логирования
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

type Logger struct {
	logFile   *os.File
	console   io.Writer
	zl        zerolog.Logger
	logLevel  string // Уровень логирования
	debugMode bool
}

// NewLogger создает логгер: консоль + файл logPath (если путь не пустой)
func NewLogger(logPath string, logLevel string, debug bool) (*Logger, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    !debug,
	}

	var (
		file    *os.File
		writers = []io.Writer{console}
	)
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create log dir: %w", err)
			}
		}

		var err error
		file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	l := NewWithWriter(zerolog.MultiLevelWriter(writers...), logLevel, debug)
	l.logFile = file
	l.console = console
	return l, nil
}

// NewWithWriter создает логгер поверх произвольного writer (JSON-строки zerolog)
func NewWithWriter(w io.Writer, logLevel string, debug bool) *Logger {
	level := strings.ToUpper(strings.TrimSpace(logLevel))
	if level == "" {
		level = LevelInfo
	}

	zl := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(level))
	return &Logger{
		console:   w,
		zl:        zl,
		logLevel:  level,
		debugMode: debug,
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn, "WARNING":
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		return zerolog.FatalLevel
	default:
		// неизвестный уровень - логируем всё
		return zerolog.DebugLevel
	}
}

// Level возвращает текущий уровень
func (l *Logger) Level() string {
	return l.logLevel
}

// Zerolog дает доступ к structured-логгеру для полей
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

// Методы для разных уровней
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

func (l *Logger) Status(stats map[string]string) {
	fmt.Fprintln(l.console, strings.Repeat("─", 50))
	fmt.Fprintln(l.console, "📊 СТАТУС СИСТЕМЫ")
	for key, value := range stats {
		fmt.Fprintf(l.console, "   %-20s: %s\n", key, value)
	}
	fmt.Fprintln(l.console, strings.Repeat("─", 50))
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Sync()
		l.logFile.Close()
		l.logFile = nil
	}
}

// fallback до InitGlobal: только консоль, уровень INFO
func newConsoleLogger() *Logger {
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime, NoColor: true}
	l := NewWithWriter(console, LevelInfo, false)
	l.console = console
	return l
}
