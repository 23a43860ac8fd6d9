package logging

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

type Logger struct {
	enableInfo        bool
	enableTracing     bool
	mutraceSubsystems sync.Mutex
	traceSubsystems   map[string]bool
	stdoutLogger      *log.Logger
	stderrLogger      *log.Logger
	infoLogger        *log.Logger
	warnLogger        *log.Logger
	debugLogger       *log.Logger
	traceLogger       *log.Logger
	profileLogger     *log.Logger
}

func NewLogger(stdout io.Writer, stderr io.Writer) *Logger {
	return &Logger{
		stdoutLogger:    log.NewWithOptions(stdout, log.Options{}),
		stderrLogger:    log.NewWithOptions(stderr, log.Options{}),
		infoLogger:      log.NewWithOptions(stdout, log.Options{Prefix: "info"}),
		warnLogger:      log.NewWithOptions(stderr, log.Options{Prefix: "warn"}),
		debugLogger:     log.NewWithOptions(stdout, log.Options{Prefix: "debug"}),
		traceLogger:     log.NewWithOptions(stdout, log.Options{Prefix: "trace"}),
		profileLogger:   log.NewWithOptions(stderr, log.Options{Prefix: "profile"}),
		traceSubsystems: make(map[string]bool),
	}
}

// NewDiscard returns a logger that drops everything, the default for
// library code that was handed no logger.
func NewDiscard() *Logger {
	return NewLogger(io.Discard, io.Discard)
}

func (l *Logger) Printf(format string, args ...interface{}) {
	l.infoLogger.Printf(format, args...)
}

func (l *Logger) Stdout(format string, args ...interface{}) {
	l.stdoutLogger.Printf(format, args...)
}

func (l *Logger) Stderr(format string, args ...interface{}) {
	l.stderrLogger.Printf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.enableInfo {
		l.infoLogger.Printf(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.stderrLogger.Printf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debugLogger.Printf(format, args...)
}

func (l *Logger) Profile(format string, args ...interface{}) {
	l.profileLogger.Printf(format, args...)
}

// Tracing reports whether Trace would print for subsystem.
func (l *Logger) Tracing(subsystem string) bool {
	if !l.enableTracing {
		return false
	}
	l.mutraceSubsystems.Lock()
	defer l.mutraceSubsystems.Unlock()
	return l.traceSubsystems[subsystem] || l.traceSubsystems["all"]
}

func (l *Logger) Trace(subsystem string, format string, args ...interface{}) {
	if l.Tracing(subsystem) {
		l.traceLogger.Printf(subsystem+": "+format, args...)
	}
}

func (l *Logger) EnableInfo() {
	l.enableInfo = true
}

func (l *Logger) EnableTrace(traces string) {
	l.mutraceSubsystems.Lock()
	defer l.mutraceSubsystems.Unlock()
	l.enableTracing = true
	l.traceSubsystems = make(map[string]bool)
	for _, subsystem := range strings.Split(traces, ",") {
		if subsystem = strings.TrimSpace(subsystem); subsystem != "" {
			l.traceSubsystems[subsystem] = true
		}
	}
}
