// Package logger wraps zerolog for coremeter components. The TUI owns the
// terminal, so output goes to a file (or nowhere) rather than stdout.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cmerrors "github.com/Dicklesworthstone/coremeter/internal/errors"
	"github.com/rs/zerolog"
)

const defaultDirPerm = 0o755

var log = zerolog.Nop()

// Init points the package logger at w and sets its minimum level.
// An empty level means "info".
func Init(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

// Open initializes logging to the file at path, creating parent
// directories as needed. An empty path discards all output.
// The returned closer is never nil.
func Open(path, level string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), Init(io.Discard, level)
	}

	if err := os.MkdirAll(filepath.Dir(path), defaultDirPerm); err != nil {
		return io.NopCloser(nil), cmerrors.WrapWithCode(err, cmerrors.ErrLogging,
			"Cannot create log directory",
			"Check permissions for "+filepath.Dir(path))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.NopCloser(nil), cmerrors.WrapWithCode(err, cmerrors.ErrLogging,
			"Cannot open log file",
			"Check permissions for "+path)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if err := Init(f, level); err != nil {
		f.Close()
		return io.NopCloser(nil), err
	}
	return f, nil
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.NoLevel, cmerrors.New(cmerrors.ErrLogging,
			"Invalid log level: "+level,
			"Use one of: debug, info, warn, error")
	}
	return lvl, nil
}

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { return log.Error() }
