package firewall

import (
	"errors"
	"log/slog"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Option is a function that allows configuring the Manager.
type Option func(*Manager) error

// WithFS sets the filesystem used to validate executable paths.
func WithFS(fs vfs.FileSystem) Option {
	return func(m *Manager) error {
		if fs == nil {
			return errors.New("filesystem is required")
		}
		m.fs = fs
		return nil
	}
}

// WithLogger sets the logger used by the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			return errors.New("logger is required")
		}
		m.logger = logger.With("component", "firewall")
		return nil
	}
}

// WithNoMatchMarker sets the text that show queries print when no rules match.
// It differs between Windows display languages. An empty marker keeps the
// current one.
func WithNoMatchMarker(marker string) Option {
	return func(m *Manager) error {
		if marker != "" {
			m.noMatchMarker = marker
		}
		return nil
	}
}

// WithTimeNow sets the function used to retrieve the current time, which is
// used in generated rule names.
func WithTimeNow(timeNowFn func() time.Time) Option {
	return func(m *Manager) error {
		m.timeNow = timeNowFn
		return nil
	}
}

// DefaultOptions returns the default Manager options.
func DefaultOptions() []Option {
	return []Option{
		WithFS(osfs.New()),
		WithLogger(slog.Default()),
		WithNoMatchMarker(DefaultNoMatchMarker),
		WithTimeNow(time.Now),
	}
}
