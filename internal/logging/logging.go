package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level or an unknown level is configured
const DefaultLevel = zerolog.WarnLevel

// New returns a console logger writing to out at the given level.
// Unknown level names fall back to DefaultLevel.
func New(out io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(out),
	}).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel converts a level name, falling back to DefaultLevel
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

// Stderr is New(os.Stderr, level)
func Stderr(level string) zerolog.Logger {
	return New(os.Stderr, level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
