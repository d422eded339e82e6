package storage

import (
	"encoding/json"
	"fmt"
)

// GetJSON reads and decodes the document at key. A missing key yields
// ErrNotFound. A document that fails to decode is an error, never a
// raw-text value; older plain-string layouts are not supported.
func GetJSON[T any](s Store, key string) (T, error) {
	var value T

	data, err := s.Get(key)
	if err != nil {
		return value, err
	}
	if err = json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return value, nil
}

// SetJSON encodes value and writes it to the document at key. A typed
// nil pointer persists as an explicit JSON null, which is how the
// session slot records "logged out" without dropping the key.
func SetJSON[T any](s Store, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	return s.Set(key, data)
}
