package filecache

import (
	"context"
	"fmt"
	"strings"
)

// Storage is a flat byte store addressed by slash-separated keys.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Read returns the stored bytes or an error wrapping ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores data under key, replacing any previous value.
	Write(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)
}

// cleanKey normalizes key and rejects keys escaping the storage root.
func cleanKey(key string) (string, error) {
	key = strings.Trim(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return key, nil
}
