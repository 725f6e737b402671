package logging

import (
	"fmt"
	"sync"
)

// MockLogger records log entries in memory. Child loggers created with
// WithError/WithField/WithFields write into the same journal as their parent,
// so a test can inspect everything a component logged through one value.
type MockLogger struct {
	journal       *journal
	pendingError  error
	pendingFields []Field
}

type journal struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry is a single captured log line.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{journal: &journal{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.journal == nil {
		m.journal = &journal{}
	}
	all := make([]Field, 0, len(m.pendingFields)+len(fields))
	all = append(all, m.pendingFields...)
	all = append(all, fields...)

	m.journal.mu.Lock()
	defer m.journal.mu.Unlock()
	m.journal.entries = append(m.journal.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.pendingError,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records a FATAL entry. It does not exit.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf records a formatted FATAL entry. It does not exit.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	return m.child(err, nil)
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.child(m.pendingError, []Field{{Key: key, Value: value}})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	return m.child(m.pendingError, fields)
}

func (m *MockLogger) child(err error, fields []Field) *MockLogger {
	if m.journal == nil {
		m.journal = &journal{}
	}
	merged := make([]Field, 0, len(m.pendingFields)+len(fields))
	merged = append(merged, m.pendingFields...)
	merged = append(merged, fields...)
	return &MockLogger{journal: m.journal, pendingError: err, pendingFields: merged}
}

// GetEntries returns a snapshot of all captured entries.
func (m *MockLogger) GetEntries() []LogEntry {
	if m.journal == nil {
		return nil
	}
	m.journal.mu.Lock()
	defer m.journal.mu.Unlock()
	out := make([]LogEntry, len(m.journal.entries))
	copy(out, m.journal.entries)
	return out
}

// GetEntriesByLevel returns captured entries of one level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.GetEntries() {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Clear drops all captured entries.
func (m *MockLogger) Clear() {
	if m.journal == nil {
		return
	}
	m.journal.mu.Lock()
	m.journal.entries = nil
	m.journal.mu.Unlock()
}

// HasEntry reports whether an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.GetEntries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// FieldValue returns the value of key on entry, if present.
func (e LogEntry) FieldValue(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}
