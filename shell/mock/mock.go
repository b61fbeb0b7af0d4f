// Package mock provides an in-memory shell integration store for tests.
package mock

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"go.hackfix.me/fwblock/shell"
)

// Store is an in-memory shell.Store. Key paths are case-insensitive, as in
// the registry.
type Store struct {
	mx           sync.Mutex
	keys         map[string]shell.Key
	fail         map[string]error
	keyExistsErr error
}

var _ shell.Store = (*Store)(nil)

// New returns a new empty Store.
func New() *Store {
	return &Store{
		keys: make(map[string]shell.Key),
		fail: make(map[string]error),
	}
}

// SetValues implements the shell.Store interface.
func (s *Store) SetValues(path string, values map[string]string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if err, ok := s.fail[strings.ToLower(path)]; ok {
		return err
	}

	k, ok := s.keys[strings.ToLower(path)]
	if !ok {
		k = shell.Key{Path: path, Values: make(map[string]string)}
	}
	maps.Copy(k.Values, values)
	s.keys[strings.ToLower(path)] = k

	return nil
}

// KeyExists implements the shell.Store interface. Parents of stored keys
// exist implicitly.
func (s *Store) KeyExists(path string) (bool, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.keyExistsErr != nil {
		return false, s.keyExistsErr
	}

	p := strings.ToLower(path)
	for lk := range s.keys {
		if lk == p || strings.HasPrefix(lk, p+`\`) {
			return true, nil
		}
	}

	return false, nil
}

// DeleteKeyTree implements the shell.Store interface.
func (s *Store) DeleteKeyTree(path string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	p := strings.ToLower(path)
	if err, ok := s.fail[p]; ok {
		return err
	}

	for lk := range s.keys {
		if lk == p || strings.HasPrefix(lk, p+`\`) {
			delete(s.keys, lk)
		}
	}

	return nil
}

// FailOn makes writes and deletes of the key at path fail with err.
func (s *Store) FailOn(path string, err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.fail[strings.ToLower(path)] = err
}

// FailKeyExists makes KeyExists fail with err.
func (s *Store) FailKeyExists(err error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.keyExistsErr = err
}

// Key returns the key stored at path.
func (s *Store) Key(path string) (shell.Key, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	k, ok := s.keys[strings.ToLower(path)]
	return k, ok
}

// Paths returns the sorted paths of all stored keys.
func (s *Store) Paths() []string {
	s.mx.Lock()
	defer s.mx.Unlock()
	paths := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		paths = append(paths, k.Path)
	}
	slices.Sort(paths)
	return paths
}
