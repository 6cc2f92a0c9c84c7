package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("another cleanup run holds the lock")

// LockPath returns the advisory lock file for dsn: next to a SQLite file, or
// in the temp dir keyed by a hash of a Postgres DSN.
func LockPath(dsn string) string {
	if IsPostgresDSN(dsn) {
		h := sha256.Sum256([]byte(dsn))
		return filepath.Join(os.TempDir(), "jobclean-"+hex.EncodeToString(h[:6])+".lock")
	}
	return dsn + ".cleanup.lock"
}

// Lock takes the single-writer lock for dsn without blocking. The returned
// func releases it.
func Lock(dsn string) (unlock func() error, err error) {
	fl := flock.New(LockPath(dsn))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, fl.Path())
	}
	return fl.Unlock, nil
}
