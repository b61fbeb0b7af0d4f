// Package shell manages the Explorer context-menu integration of executable
// files, which is stored in the registry under HKEY_CLASSES_ROOT.
package shell

import (
	"fmt"
	"log/slog"
)

// Store is the interface to the store of shell integration keys. Paths are
// backslash separated and relative to HKEY_CLASSES_ROOT.
type Store interface {
	// SetValues creates the key at path if it doesn't exist, including any
	// missing parents, and sets the given string values on it. The empty name
	// is the key's default value.
	SetValues(path string, values map[string]string) error

	// KeyExists reports whether the key at path exists.
	KeyExists(path string) (bool, error)

	// DeleteKeyTree deletes the key at path and all of its subkeys. Deleting a
	// key that doesn't exist is not an error.
	DeleteKeyTree(path string) error
}

// Key is a single key of the shell integration.
type Key struct {
	Path   string
	Values map[string]string
}

// AdminRequiredError is returned when an installation action is attempted
// without administrator privileges.
type AdminRequiredError struct {
	Action string
}

// Error returns a string representation of the error.
func (e *AdminRequiredError) Error() string {
	return fmt.Sprintf("this application must be run as Administrator to %s the context menu", e.Action)
}

// Integration installs and uninstalls the "Block in Firewall" context menu.
type Integration struct {
	store    Store
	classKey string
	verbKey  string
	label    string
	isAdmin  func() bool
	logger   *slog.Logger
}

// NewIntegration returns a new Integration backed by store.
func NewIntegration(store Store, opts ...Option) (*Integration, error) {
	if store == nil {
		return nil, fmt.Errorf("shell integration store is required")
	}

	i := &Integration{store: store}

	opts = append(DefaultOptions(), opts...)
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	return i, nil
}

// VerbPath returns the path of the context-menu verb key.
func (i *Integration) VerbPath() string {
	return i.classKey + `\shell\` + i.verbKey
}

// Entries returns the keys that make up the context menu, parents first. Each
// direction sub-verb runs exePath with the selected file and the direction.
func (i *Integration) Entries(exePath string) []Key {
	verb := i.VerbPath()
	keys := []Key{
		{
			Path:   verb,
			Values: map[string]string{"MUIVerb": i.label, "SubCommands": ""},
		},
	}

	for _, sub := range []struct{ name, label, dir string }{
		{"inbound", "Inbound", "in"},
		{"outbound", "Outbound", "out"},
	} {
		subPath := verb + `\shell\` + sub.name
		keys = append(keys,
			Key{
				Path: subPath,
				Values: map[string]string{
					"MUIVerb": sub.label,
					"":        fmt.Sprintf("Block %s Connections", sub.label),
				},
			},
			Key{
				Path:   subPath + `\command`,
				Values: map[string]string{"": fmt.Sprintf(`"%s" "%%1" %s`, exePath, sub.dir)},
			},
		)
	}

	return keys
}

// Install writes the context-menu keys. It's not transactional: if writing a
// key fails, the keys written before it are left in place.
func (i *Integration) Install(exePath string) error {
	if !i.isAdmin() {
		return &AdminRequiredError{Action: "install"}
	}

	for _, key := range i.Entries(exePath) {
		i.logger.Debug("writing registry key", "key", key.Path)
		if err := i.store.SetValues(key.Path, key.Values); err != nil {
			return fmt.Errorf("failed writing registry key '%s': %w", key.Path, err)
		}
	}

	i.logger.Info("installed context menu", "key", i.VerbPath(), "command", exePath)

	return nil
}

// Uninstall removes the context-menu keys.
func (i *Integration) Uninstall() error {
	if !i.isAdmin() {
		return &AdminRequiredError{Action: "uninstall"}
	}

	if err := i.store.DeleteKeyTree(i.VerbPath()); err != nil {
		return fmt.Errorf("failed deleting registry key '%s': %w", i.VerbPath(), err)
	}

	i.logger.Info("uninstalled context menu", "key", i.VerbPath())

	return nil
}

// IsInstalled reports whether the context-menu verb key exists. Failures to
// query the store are reported as not installed.
func (i *Integration) IsInstalled() bool {
	ok, err := i.store.KeyExists(i.VerbPath())
	if err != nil {
		i.logger.Debug("failed checking registry key", "key", i.VerbPath(), "error", err)
		return false
	}
	return ok
}

// IsAdmin reports whether the process can install or uninstall the context
// menu.
func (i *Integration) IsAdmin() bool {
	return i.isAdmin()
}
