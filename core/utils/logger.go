package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Logger is a small leveled wrapper around the standard logger. A nil *Logger
// is safe to call; every method no-ops.
type Logger struct {
	logger *log.Logger
}

func NewLogger() *Logger {
	return &Logger{logger: log.New(os.Stdout, "", 0)}
}

func (l *Logger) write(level, format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] [%s] %s", ts, level, fmt.Sprintf(format, args...))
}

// Printf logs at info level; kept for compatibility with callers that do not
// distinguish levels.
func (l *Logger) Printf(format string, args ...any) {
	l.write("INFO", format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.write("INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.write("WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write("ERROR", format, args...)
}
