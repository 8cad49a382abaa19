package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Dev environments get a human readable console writer.
func New(level, env string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if isDev(env) {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "vetclinic").Logger()
}

// Nop is used by tests and by components constructed without a logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isDev(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "" || env == "dev" || env == "development" || env == "local"
}
