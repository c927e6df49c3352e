// Package ports defines the interfaces between videodocs components and their adapters.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for adapter internals: seeks, probes, backend selection.
	LevelDebug LogLevel = iota
	// LevelInfo is for command-level progress such as extraction summaries.
	LevelInfo
	// LevelWarn is for recoverable problems, e.g. a probe falling back to decoding.
	LevelWarn
	// LevelError is for failures that end the current command.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown values map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging operations.
// The msg argument is a format string that doubles as a translation key.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags messages with the component name.
	WithComponent(component string) Logger
}
