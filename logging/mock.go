package logging

import (
	"fmt"
	"sync"
)

// MockLogger implements the Logger interface for testing purposes
type MockLogger struct {
	mu sync.RWMutex

	level  Level
	fields Fields

	// Captured logs for verification
	LogEntries []LogEntry
}

// LogEntry represents a captured log entry for testing verification
type LogEntry struct {
	Level   Level
	Message string
	Fields  Fields
}

// NewMockLogger creates a new mock logger for testing
func NewMockLogger() *MockLogger {
	return &MockLogger{
		level:      DebugLevel,
		LogEntries: make([]LogEntry, 0),
		fields:     make(Fields),
	}
}

// Level control methods
func (m *MockLogger) SetLevel(level Level) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
}

func (m *MockLogger) GetLevel() Level {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.level
}

func (m *MockLogger) IsLevelEnabled(level Level) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return level >= m.level
}

// log captures an entry if the level is enabled
func (m *MockLogger) log(level Level, msg string, extra Fields) {
	if !m.IsLevelEnabled(level) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := make(Fields)
	for k, v := range m.fields {
		fields[k] = v
	}
	for k, v := range extra {
		fields[k] = v
	}
	m.LogEntries = append(m.LogEntries, LogEntry{Level: level, Message: msg, Fields: fields})
}

// Basic logging methods
func (m *MockLogger) Debug(msg string) { m.log(DebugLevel, msg, nil) }
func (m *MockLogger) Info(msg string)  { m.log(InfoLevel, msg, nil) }
func (m *MockLogger) Warn(msg string)  { m.log(WarnLevel, msg, nil) }
func (m *MockLogger) Error(msg string) { m.log(ErrorLevel, msg, nil) }

// Formatted logging methods
func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Key-value logging methods
func (m *MockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.log(DebugLevel, msg, keysAndValuesToFields(keysAndValues...))
}

func (m *MockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.log(InfoLevel, msg, keysAndValuesToFields(keysAndValues...))
}

func (m *MockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.log(WarnLevel, msg, keysAndValuesToFields(keysAndValues...))
}

func (m *MockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.log(ErrorLevel, msg, keysAndValuesToFields(keysAndValues...))
}

// Structured logging with fields
func (m *MockLogger) WithFields(fields Fields) Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	child := &MockLogger{
		level:  m.level,
		fields: make(Fields),
	}
	for k, v := range m.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	// writes go through the parent so its entry list sees everything
	return &sharedMockLogger{parent: m, child: child}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Fields{key: value})
}

func (m *MockLogger) WithError(err error) Logger {
	if err == nil {
		return m
	}
	return m.WithFields(Fields{"error": err.Error()})
}

func (m *MockLogger) Close() error { return nil }

// HasEntry reports whether a message was logged at the given level
func (m *MockLogger) HasEntry(level Level, msg string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.LogEntries {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// EntryCount returns the number of captured entries
func (m *MockLogger) EntryCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.LogEntries)
}

// sharedMockLogger forwards writes to the parent so field-scoped children
// contribute to the same captured entry list
type sharedMockLogger struct {
	parent *MockLogger
	child  *MockLogger
}

func (s *sharedMockLogger) SetLevel(level Level)            { s.parent.SetLevel(level) }
func (s *sharedMockLogger) GetLevel() Level                 { return s.parent.GetLevel() }
func (s *sharedMockLogger) IsLevelEnabled(level Level) bool { return s.parent.IsLevelEnabled(level) }

func (s *sharedMockLogger) Debug(msg string) { s.parent.log(DebugLevel, msg, s.child.fields) }
func (s *sharedMockLogger) Info(msg string)  { s.parent.log(InfoLevel, msg, s.child.fields) }
func (s *sharedMockLogger) Warn(msg string)  { s.parent.log(WarnLevel, msg, s.child.fields) }
func (s *sharedMockLogger) Error(msg string) { s.parent.log(ErrorLevel, msg, s.child.fields) }

func (s *sharedMockLogger) Debugf(format string, args ...interface{}) {
	s.parent.log(DebugLevel, fmt.Sprintf(format, args...), s.child.fields)
}

func (s *sharedMockLogger) Infof(format string, args ...interface{}) {
	s.parent.log(InfoLevel, fmt.Sprintf(format, args...), s.child.fields)
}

func (s *sharedMockLogger) Warnf(format string, args ...interface{}) {
	s.parent.log(WarnLevel, fmt.Sprintf(format, args...), s.child.fields)
}

func (s *sharedMockLogger) Errorf(format string, args ...interface{}) {
	s.parent.log(ErrorLevel, fmt.Sprintf(format, args...), s.child.fields)
}

func (s *sharedMockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	s.parent.log(DebugLevel, msg, mergeFields(s.child.fields, keysAndValuesToFields(keysAndValues...)))
}

func (s *sharedMockLogger) Infow(msg string, keysAndValues ...interface{}) {
	s.parent.log(InfoLevel, msg, mergeFields(s.child.fields, keysAndValuesToFields(keysAndValues...)))
}

func (s *sharedMockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	s.parent.log(WarnLevel, msg, mergeFields(s.child.fields, keysAndValuesToFields(keysAndValues...)))
}

func (s *sharedMockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	s.parent.log(ErrorLevel, msg, mergeFields(s.child.fields, keysAndValuesToFields(keysAndValues...)))
}

func (s *sharedMockLogger) WithFields(fields Fields) Logger {
	merged := mergeFields(s.child.fields, fields)
	return &sharedMockLogger{parent: s.parent, child: &MockLogger{level: s.parent.GetLevel(), fields: merged}}
}

func (s *sharedMockLogger) WithField(key string, value interface{}) Logger {
	return s.WithFields(Fields{key: value})
}

func (s *sharedMockLogger) WithError(err error) Logger {
	if err == nil {
		return s
	}
	return s.WithFields(Fields{"error": err.Error()})
}

func (s *sharedMockLogger) Close() error { return nil }

func mergeFields(base, extra Fields) Fields {
	merged := make(Fields)
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
