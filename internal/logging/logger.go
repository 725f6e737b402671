// Package logging provides the structured logger used across alert-extract.
// Components depend on the Logger interface; LogrusAdapter is the production
// implementation and MockLogger records entries for tests.
package logging

// Logger is the structured logging contract injected into every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err on every entry.
	WithError(err error) Logger

	// WithField returns a child logger carrying a single field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a child logger carrying all given fields.
	WithFields(fields ...Field) Logger

	// Fatal logs and terminates the process.
	Fatal(msg string, fields ...Field)

	// Fatalf logs a formatted message and terminates the process.
	Fatalf(msg string, args ...interface{})
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field inline.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
