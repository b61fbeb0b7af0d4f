//go:build windows

package shell

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"golang.org/x/sys/windows/registry"
)

// Registry is the Store backed by the Windows registry.
type Registry struct {
	root registry.Key
}

var _ Store = (*Registry)(nil)

// NewRegistry returns a Store for keys under HKEY_CLASSES_ROOT.
func NewRegistry() *Registry {
	return &Registry{root: registry.CLASSES_ROOT}
}

// SetValues implements the Store interface.
func (r *Registry) SetValues(path string, values map[string]string) error {
	k, _, err := registry.CreateKey(r.root, path, registry.SET_VALUE)
	if err != nil {
		return err //nolint:wrapcheck // This is wrapped by the caller.
	}
	defer k.Close()

	for _, name := range slices.Sorted(maps.Keys(values)) {
		if err = k.SetStringValue(name, values[name]); err != nil {
			return fmt.Errorf("failed setting value '%s': %w", name, err)
		}
	}

	return nil
}

// KeyExists implements the Store interface.
func (r *Registry) KeyExists(path string) (bool, error) {
	k, err := registry.OpenKey(r.root, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err //nolint:wrapcheck // This is wrapped by the caller.
	}
	k.Close()

	return true, nil
}

// DeleteKeyTree implements the Store interface.
func (r *Registry) DeleteKeyTree(path string) error {
	return deleteTree(r.root, path)
}

// deleteTree deletes subkeys depth-first, since RegDeleteKey only deletes
// keys without subkeys.
func deleteTree(parent registry.Key, path string) error {
	k, err := registry.OpenKey(parent, path, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err //nolint:wrapcheck // This is wrapped by the caller.
	}

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		k.Close()
		return fmt.Errorf("failed reading subkeys of '%s': %w", path, err)
	}
	for _, name := range names {
		if err = deleteTree(k, name); err != nil {
			k.Close()
			return err
		}
	}
	k.Close()

	if err = registry.DeleteKey(parent, path); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed deleting '%s': %w", path, err)
	}

	return nil
}
