package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/wire"
	"github.com/starknet-mobile/starkdeploy/internal/domain/config"
)

// EnvLogLevel selects the log level (debug, info, warn, error)
const EnvLogLevel = "STARKDEPLOY_LOG_LEVEL"

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg *config.RuntimeConfig, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if val := strings.ToLower(os.Getenv(EnvLogLevel)); val != "" {
		switch val {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			// unknown value, keep default
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if cfg != nil && cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// shortPath returns a shortened version of the file path
func shortPath(file string) string {
	// Try to make paths relative to the module root
	const marker = "starkdeploy/"
	if idx := strings.LastIndex(file, marker); idx != -1 {
		return file[idx+len(marker):]
	}
	// Otherwise relative to this package's parent
	_, f, _, _ := runtime.Caller(0)
	if idx := strings.LastIndex(f, "/"); idx != -1 {
		if idx2 := strings.LastIndex(file, f[:idx]); idx2 != -1 {
			return file[idx2+len(f[:idx])+1:]
		}
	}
	// Last resort: just the filename
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
