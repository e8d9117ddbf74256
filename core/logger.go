package core

// Logger is the logging handle passed into components; implementations live
// in services/logger.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	// Error logs msg and err along with any extra context args.
	Error(msg string, err error, args ...interface{})
}
