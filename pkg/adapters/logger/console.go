// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/clamsproject/mmif-utils-videodocuments/pkg/ports"
	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// console is the destination shared by a logger and its component children.
type console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// ConsoleLogger writes translated, optionally colored lines to a console.
// All levels go to the same writer so stdout stays free for command output.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	console   *console
}

// NewConsole creates a console logger on stderr. Color output is enabled
// when stderr is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stderr.Fd()
	return NewConsoleWriter(os.Stderr, level, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// NewConsoleWriter creates a console logger writing to w.
func NewConsoleWriter(w io.Writer, level ports.LogLevel, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		level:   level,
		console: &console{out: w, color: color},
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger that prefixes lines with the component name.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	return &ConsoleLogger{
		level:     l.level,
		component: component,
		console:   l.console,
	}
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	line := l10n.F(msg, args...)

	c := l.console
	if l.component != "" {
		if c.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}
	if c.color {
		switch level {
		case ports.LevelDebug:
			line = colorGray + line + colorReset
		case ports.LevelWarn:
			line = colorYellow + line + colorReset
		case ports.LevelError:
			line = colorRed + line + colorReset
		}
	} else if level >= ports.LevelWarn {
		line = level.String() + ": " + line
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
