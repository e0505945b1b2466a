package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a shared zerolog instance so all packages log through the
// same output and global level configuration
type Logger struct {
	zl *zerolog.Logger
}

// unexported shared logger
var instance Logger

func init() {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Caller().
		Timestamp().
		Logger()

	instance = Logger{
		zl: &zl,
	}
}

// New returns the shared logger
func New() Logger {
	return instance
}

// GlobalSetLogFile redirects every logger to the given file
func GlobalSetLogFile(f *os.File) {
	newZl := instance.zl.Output(f)

	*instance.zl = newZl
}

// Trace wrapper around zerolog Trace
func (l Logger) Trace() *zerolog.Event {
	return l.zl.Trace()
}

// Debug wrapper around zerolog Debug
func (l Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

// Info wrapper around zerolog Info
func (l Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

// Warn wrapper around zerolog Warn
func (l Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

// Error wrapper around zerolog Error
func (l Logger) Error() *zerolog.Event {
	return l.zl.Error()
}

// Fatal wrapper around zerolog Fatal
func (l Logger) Fatal() *zerolog.Event {
	return l.zl.Fatal()
}
