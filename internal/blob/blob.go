// Package blob stores uploaded media and hands back a public URL.
package blob

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/wichananm65/styliqo-backend/internal/backend"
)

var ErrEmpty = errors.New("empty upload")

type Store interface {
	// Put stores data under a name derived from hint and returns its URL.
	Put(ctx context.Context, hint string, data []byte) (string, error)
}

// objectName prefixes the sanitized file name with a fresh id so uploads
// never overwrite each other.
func objectName(hint string) string {
	base := filepath.Base(strings.ReplaceAll(hint, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" || base == "." || base == "_" {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}

// LocalStore writes files under dir and serves them from baseURL.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Put(ctx context.Context, hint string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}
	name := objectName(hint)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

// MemoryStore keeps uploads in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: strings.TrimRight(baseURL, "/"), objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, hint string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	name := objectName(hint)
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[name] = buf
	s.mu.Unlock()
	return s.baseURL + "/" + name, nil
}

// Get returns the bytes stored at url.
func (s *MemoryStore) Get(url string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[path.Base(url)]
	return b, ok
}

// OfflineStore rejects every upload.
type OfflineStore struct{}

func (OfflineStore) Put(ctx context.Context, hint string, data []byte) (string, error) {
	return "", backend.ErrUnavailable
}
