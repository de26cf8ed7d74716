package logging

import "github.com/vvka-141/pkgdata/pkg/pkgdata"

// NullLogger drops every message. Tests and library callers that want a
// quiet scan use it.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}

var (
	_ pkgdata.Logger = (*NullLogger)(nil)
	_ pkgdata.Logger = (*ConsoleLogger)(nil)
)
