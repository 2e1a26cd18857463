package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"video-ingest-service/pkg/config"
)

// Logger wraps logrus so call sites stay decoupled from the backend.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// NewLogger builds a logger from the log section of the configuration.
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level := logrus.InfoLevel
	if cfg != nil {
		if parsed, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level)); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)

	if cfg != nil && strings.EqualFold(cfg.Log.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger := &Logger{entry: l}
	if cfg != nil && cfg.Log.Output != "" && cfg.Log.Output != "stdout" {
		if f, err := os.OpenFile(cfg.Log.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			l.SetOutput(io.MultiWriter(os.Stdout, f))
			logger.file = f
		}
	}
	return logger
}

// Close releases the log file handle, if any.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// Debug logs a message with optional structured fields.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.withFields(fields).Debug(msg)
}

// Info logs a message with optional structured fields.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.withFields(fields).Info(msg)
}

// Warn logs a message with optional structured fields.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.withFields(fields).Warn(msg)
}

// Error logs a message with optional structured fields.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.withFields(fields).Error(msg)
}

// Fatal logs a message and exits.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	l.withFields(fields).Fatal(msg)
}

func (l *Logger) withFields(fields []map[string]interface{}) *logrus.Entry {
	entry := logrus.NewEntry(l.entry)
	for _, f := range fields {
		entry = entry.WithFields(logrus.Fields(f))
	}
	return entry
}

var (
	globalMu sync.RWMutex
	global   = NewLogger(nil)
)

// SetGlobalLogger installs the process-wide logger used by the package
// level functions below.
func SetGlobalLogger(l *Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

func getGlobal() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func Debugf(format string, args ...interface{}) { getGlobal().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { getGlobal().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { getGlobal().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { getGlobal().Errorf(format, args...) }

func Debug(msg string, fields ...map[string]interface{}) { getGlobal().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { getGlobal().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { getGlobal().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { getGlobal().Error(msg, fields...) }
func Fatal(msg string, fields ...map[string]interface{}) { getGlobal().Fatal(msg, fields...) }
