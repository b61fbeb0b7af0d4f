package shell

import (
	"errors"
	"log/slog"
)

// Default registry locations and labels of the context menu.
const (
	DefaultClassKey  = "exefile"
	DefaultVerbKey   = "BlockInFirewall"
	DefaultMenuLabel = "Block in Firewall"
)

// Option is a function that allows configuring the Integration.
type Option func(*Integration) error

// WithAdminCheck sets the function used to check for administrator
// privileges before installing or uninstalling.
func WithAdminCheck(isAdmin func() bool) Option {
	return func(i *Integration) error {
		i.isAdmin = isAdmin
		return nil
	}
}

// WithKeys sets the file class key the verb is registered under, the verb key
// name, and the menu label. Empty values keep the current ones.
func WithKeys(classKey, verbKey, label string) Option {
	return func(i *Integration) error {
		if classKey != "" {
			i.classKey = classKey
		}
		if verbKey != "" {
			i.verbKey = verbKey
		}
		if label != "" {
			i.label = label
		}
		return nil
	}
}

// WithLogger sets the logger used by the Integration.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Integration) error {
		if logger == nil {
			return errors.New("logger is required")
		}
		i.logger = logger.With("component", "shell")
		return nil
	}
}

// DefaultOptions returns the default Integration options.
func DefaultOptions() []Option {
	return []Option{
		WithAdminCheck(func() bool { return false }),
		WithKeys(DefaultClassKey, DefaultVerbKey, DefaultMenuLabel),
		WithLogger(slog.Default()),
	}
}
