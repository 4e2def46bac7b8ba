package logging

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// Configure installs a logger writing to out at the named level. Terminals get
// the human-readable console writer; everything else gets JSON lines.
func Configure(out io.Writer, level string, fd uintptr) zerolog.Logger {
	var w io.Writer = out
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		w = zerolog.ConsoleWriter{Out: out}
	}
	logger := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
	SetGlobalLogger(logger)
	return logger
}

// ParseLevel maps a level name onto zerolog levels, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func With() zerolog.Context { return Logger.With() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Error() *zerolog.Event { return Logger.Error() }

func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }
