package storage

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockProject takes an exclusive advisory lock on a project's storage
// directory, guarding against two mutating invocations racing on the
// same project. The returned function releases the lock and must be
// deferred on all exit paths. Read-only commands skip the lock and see
// the last atomically-committed state instead.
func (s *Store) LockProject(name string) (func(), error) {
	return s.lock(filepath.Join(s.ProjectDir(name), ".lock"))
}

// LockRegistry takes an exclusive advisory lock on the registry,
// guarding register/remove against concurrent invocations.
func (s *Store) LockRegistry() (func(), error) {
	return s.lock(filepath.Join(s.root, ".lock"))
}

func (s *Store) lock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	fl := flock.New(path)
	if err := fl.Lock(); err != nil {
		return nil, &IOError{Op: "lock", Path: path, Err: err}
	}
	return func() {
		// Releasing a held lock only fails on a broken descriptor;
		// process exit releases it regardless.
		_ = fl.Unlock()
	}, nil
}
