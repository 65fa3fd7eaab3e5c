package ports

// Logger is the build tool's leveled logging surface.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a diagnostic message with optional key-value pairs.
	// Debug output is suppressed unless verbose diagnostics are enabled.
	Debug(msg string, args ...any)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
