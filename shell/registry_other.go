//go:build !windows

package shell

import "errors"

// Registry is the Store backed by the Windows registry. It's unavailable on
// this platform.
type Registry struct{}

var _ Store = (*Registry)(nil)

// NewRegistry returns a Store for keys under HKEY_CLASSES_ROOT.
func NewRegistry() *Registry {
	return &Registry{}
}

// SetValues implements the Store interface.
func (*Registry) SetValues(string, map[string]string) error {
	return errors.ErrUnsupported
}

// KeyExists implements the Store interface.
func (*Registry) KeyExists(string) (bool, error) {
	return false, errors.ErrUnsupported
}

// DeleteKeyTree implements the Store interface.
func (*Registry) DeleteKeyTree(string) error {
	return errors.ErrUnsupported
}
