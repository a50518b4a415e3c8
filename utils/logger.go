package utils

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Sink receives every log line alongside the terminal output. The task
// registry uses this to expose scraper progress to polling clients.
type Sink func(level, message string)

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger
	sink  Sink
}

// NewLogger creates a new Logger writing to stdout/stderr.
func NewLogger() *Logger {
	flags := 0
	return &Logger{
		info:  log.New(os.Stdout, "", flags),
		warn:  log.New(os.Stdout, "", flags),
		err:   log.New(os.Stderr, "", flags),
		debug: log.New(os.Stdout, "", flags),
	}
}

// WithSink returns a copy of the logger that also forwards every message to
// the given sink.
func (l *Logger) WithSink(sink Sink) *Logger {
	clone := *l
	clone.sink = sink
	return &clone
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) emit(level string, msg string) {
	if l.sink != nil {
		l.sink(level, msg)
	}
}

func (l *Logger) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.info.Printf("[%s] \033[32mINFO\033[0m  %s\n", l.timestamp(), msg)
	l.emit("info", msg)
}

func (l *Logger) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.warn.Printf("[%s] \033[33mWARN\033[0m  %s\n", l.timestamp(), msg)
	l.emit("warning", msg)
}

func (l *Logger) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.err.Printf("[%s] \033[31mERROR\033[0m %s\n", l.timestamp(), msg)
	l.emit("error", msg)
}

func (l *Logger) Debug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.debug.Printf("[%s] \033[36mDEBUG\033[0m %s\n", l.timestamp(), msg)
	l.emit("debug", msg)
}
