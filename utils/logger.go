package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	infoTag  = color.New(color.FgGreen).Sprint("INFO")
	warnTag  = color.New(color.FgYellow).Sprint("WARN")
	errorTag = color.New(color.FgRed).Sprint("ERROR")
	debugTag = color.New(color.FgCyan).Sprint("DEBUG")
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
}

// NewLogger creates a new Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout, os.Stderr)
}

// NewLoggerTo creates a Logger writing errors to errOut and everything else
// to out.
func NewLoggerTo(out, errOut io.Writer) *Logger {
	flags := 0
	return &Logger{
		info:  log.New(out, "", flags),
		warn:  log.New(out, "", flags),
		err:   log.New(errOut, "", flags),
		debug: log.New(out, "", flags),
	}
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, io.Discard)
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Print(l.line(infoTag+" ", format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Print(l.line(warnTag+" ", format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Print(l.line(errorTag, format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.debug.Print(l.line(debugTag, format, args...))
}

func (l *Logger) line(tag, format string, args ...any) string {
	return fmt.Sprintf("[%s] %s %s\n", l.timestamp(), tag, fmt.Sprintf(format, args...))
}
