package logsvc

import (
	"log"

	"github.com/acadbase/academia/core"
)

// StdLogger writes everything to a standard library logger. Used in DEV|TEST
// mode where shipping events to Rollbar is noise.
type StdLogger struct {
	std     *log.Logger
	enabled bool
	debug   bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger, conf *core.Config) *StdLogger {
	return &StdLogger{std: std, enabled: true, debug: conf.Debug}
}

func (l *StdLogger) Enable(enabled bool) {
	l.enabled = enabled
}

func (l *StdLogger) print(level, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) {
	if l.debug {
		l.print("DEBUG", msg, args)
	}
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args)
}

func (l *StdLogger) Error(msg string, err error, args ...interface{}) {
	l.print("ERROR", msg, append(args, err))
}
