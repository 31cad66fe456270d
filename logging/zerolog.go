package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger interface using zerolog
type ZerologLogger struct {
	mu       sync.RWMutex
	logger   zerolog.Logger
	level    Level
	fields   Fields
	errorKey string
	config   *LoggerConfig
}

// NewLogger creates a ZerologLogger writing JSON to the given writer.
// A nil writer defaults to stderr.
func NewLogger(config *LoggerConfig, w io.Writer) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}

	// set global logger to lowest level so that
	// explicit logger instance level can always take effect
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", config.ServiceName).
		Logger().
		Level(levelToZerolog(config.Level))

	return &ZerologLogger{
		logger:   logger,
		level:    config.Level,
		fields:   make(Fields),
		errorKey: "error",
		config:   config,
	}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *ZerologLogger {
	return &ZerologLogger{
		logger:   zerolog.Nop(),
		level:    ErrorLevel,
		fields:   make(Fields),
		errorKey: "error",
		config:   &LoggerConfig{Level: ErrorLevel},
	}
}

// Close releases resources held by the logger
func (z *ZerologLogger) Close() error {
	return nil
}

// SetLevel sets the logging level
func (z *ZerologLogger) SetLevel(level Level) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.level = level
	z.logger = z.logger.Level(levelToZerolog(level))
}

// GetLevel returns the current logging level
func (z *ZerologLogger) GetLevel() Level {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.level
}

// IsLevelEnabled checks if the given level is enabled
func (z *ZerologLogger) IsLevelEnabled(level Level) bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return level >= z.level
}

// levelToZerolog converts our Level to zerolog.Level
func levelToZerolog(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// getEvent creates a zerolog event with current fields
func (z *ZerologLogger) getEvent(level Level) *zerolog.Event {
	var event *zerolog.Event

	switch level {
	case DebugLevel:
		event = z.logger.Debug()
	case InfoLevel:
		event = z.logger.Info()
	case WarnLevel:
		event = z.logger.Warn()
	case ErrorLevel:
		event = z.logger.Error()
	default:
		event = z.logger.Info()
	}

	z.mu.RLock()
	for key, value := range z.fields {
		event = event.Interface(key, value)
	}
	z.mu.RUnlock()

	return event
}

// Basic logging methods
func (z *ZerologLogger) Debug(msg string) {
	if !z.IsLevelEnabled(DebugLevel) {
		return
	}
	z.getEvent(DebugLevel).Msg(msg)
}

func (z *ZerologLogger) Info(msg string) {
	if !z.IsLevelEnabled(InfoLevel) {
		return
	}
	z.getEvent(InfoLevel).Msg(msg)
}

func (z *ZerologLogger) Warn(msg string) {
	if !z.IsLevelEnabled(WarnLevel) {
		return
	}
	z.getEvent(WarnLevel).Msg(msg)
}

func (z *ZerologLogger) Error(msg string) {
	if !z.IsLevelEnabled(ErrorLevel) {
		return
	}
	z.getEvent(ErrorLevel).Msg(msg)
}

// Formatted logging methods
func (z *ZerologLogger) Debugf(format string, args ...interface{}) {
	if !z.IsLevelEnabled(DebugLevel) {
		return
	}
	z.getEvent(DebugLevel).Msgf(format, args...)
}

func (z *ZerologLogger) Infof(format string, args ...interface{}) {
	if !z.IsLevelEnabled(InfoLevel) {
		return
	}
	z.getEvent(InfoLevel).Msgf(format, args...)
}

func (z *ZerologLogger) Warnf(format string, args ...interface{}) {
	if !z.IsLevelEnabled(WarnLevel) {
		return
	}
	z.getEvent(WarnLevel).Msgf(format, args...)
}

func (z *ZerologLogger) Errorf(format string, args ...interface{}) {
	if !z.IsLevelEnabled(ErrorLevel) {
		return
	}
	z.getEvent(ErrorLevel).Msgf(format, args...)
}

// Key-value logging methods
func (z *ZerologLogger) Debugw(msg string, keysAndValues ...interface{}) {
	z.WithFields(keysAndValuesToFields(keysAndValues...)).Debug(msg)
}

func (z *ZerologLogger) Infow(msg string, keysAndValues ...interface{}) {
	z.WithFields(keysAndValuesToFields(keysAndValues...)).Info(msg)
}

func (z *ZerologLogger) Warnw(msg string, keysAndValues ...interface{}) {
	z.WithFields(keysAndValuesToFields(keysAndValues...)).Warn(msg)
}

func (z *ZerologLogger) Errorw(msg string, keysAndValues ...interface{}) {
	z.WithFields(keysAndValuesToFields(keysAndValues...)).Error(msg)
}

// Structured logging with fields
func (z *ZerologLogger) WithFields(fields Fields) Logger {
	newLogger := z.clone()
	newLogger.mu.Lock()
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	newLogger.mu.Unlock()
	return newLogger
}

func (z *ZerologLogger) WithField(key string, value interface{}) Logger {
	return z.WithFields(Fields{key: value})
}

func (z *ZerologLogger) WithError(err error) Logger {
	if err == nil {
		return z
	}
	return z.WithField(z.errorKey, err.Error())
}

// clone creates a copy of the logger sharing the same sink and config
func (z *ZerologLogger) clone() *ZerologLogger {
	z.mu.RLock()
	defer z.mu.RUnlock()

	newFields := make(Fields)
	for k, v := range z.fields {
		newFields[k] = v
	}

	return &ZerologLogger{
		logger:   z.logger,
		level:    z.level,
		fields:   newFields,
		errorKey: z.errorKey,
		config:   z.config,
	}
}
