package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// Well-known document keys.
const (
	// UsersKey holds the ordered collection of all registered users.
	UsersKey = "users"

	// CurrentUserKey holds the session pointer, or an explicit null
	// when nobody is logged in.
	CurrentUserKey = "current_user"
)

// ErrNotFound is returned by Get when no document exists for the key.
var ErrNotFound = errors.New("document not found")

// Store is a named-slot document store. It reports failures honestly;
// the degrade-to-no-value policy the data layer wants on top of it
// belongs to the callers, not here.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Remove(key string) error
	Clear() error
}

type fileStore struct {
	logger zerolog.Logger
	dir    string
	mu     sync.Mutex
	fl     *flock.Flock
}

// NewFileStore opens a store rooted at dir, creating it if needed.
// Each key maps to a JSON document <dir>/<key>.json. An advisory file
// lock serializes access across processes sharing the directory; it
// prevents torn documents, not lost updates, so the last writer of a
// document still wins.
func NewFileStore(logger zerolog.Logger, dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &fileStore{
		logger: logger,
		dir:    dir,
		fl:     flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fl.Lock(); err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer func() { _ = s.fl.Unlock() }()

	return fn()
}

func (s *fileStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.withLock(func() error {
		b, err := os.ReadFile(s.path(key))
		if err != nil {
			if os.IsNotExist(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to read document %q: %w", key, err)
		}
		data = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Msg("read document")
	return data, nil
}

func (s *fileStore) Set(key string, data []byte) error {
	err := s.withLock(func() error {
		// Write to a temp file in the same directory, then rename so
		// readers never observe a partially written document.
		path := s.path(key)
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return fmt.Errorf("failed to write document %q: %w", key, err)
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to replace document %q: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug().
		Str("key", key).
		Int("bytes", len(data)).
		Msg("wrote document")
	return nil
}

func (s *fileStore) Remove(key string) error {
	return s.withLock(func() error {
		err := os.Remove(s.path(key))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove document %q: %w", key, err)
		}
		return nil
	})
}

func (s *fileStore) Clear() error {
	return s.withLock(func() error {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			return fmt.Errorf("failed to list storage dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			err = os.Remove(filepath.Join(s.dir, entry.Name()))
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove document %q: %w", entry.Name(), err)
			}
		}
		return nil
	})
}
