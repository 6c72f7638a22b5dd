// Package store is the client-local persistent key-value store: the Go
// counterpart of the browser's local storage. Three keys live here — auth
// token, user profile, chat history — and every one must tolerate absence
// and corruption by falling back to absent, never by failing the app.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Well-known keys, named as the original client named them.
const (
	KeyAuthToken   = "authToken"
	KeyUserData    = "userData"
	KeyChatHistory = "chatHistory"
)

// Store is a write-through KV: Set must be durable before it returns.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

var safeKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileStore keeps one JSON-ish blob per key under a state directory, with a
// go-cache read layer so hot keys skip the filesystem. Writes go to disk
// first, then refresh the cache.
type FileStore struct {
	dir    string
	reads  *gocache.Cache
	logger *zap.Logger
}

func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{
		dir:    dir,
		reads:  gocache.New(5*time.Minute, 10*time.Minute),
		logger: logger,
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	if !safeKey.MatchString(key) {
		return nil, false
	}
	if v, ok := s.reads.Get(key); ok {
		return v.([]byte), true
	}
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("State file unreadable, treating as absent",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	s.reads.Set(key, raw, gocache.DefaultExpiration)
	return raw, true
}

func (s *FileStore) Set(key string, value []byte) error {
	if !safeKey.MatchString(key) {
		return os.ErrInvalid
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return err
	}
	s.reads.Set(key, value, gocache.DefaultExpiration)
	return nil
}

func (s *FileStore) Delete(key string) error {
	if !safeKey.MatchString(key) {
		return os.ErrInvalid
	}
	s.reads.Delete(key)
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetJSON decodes the stored value into out. Malformed content is logged and
// reported as absent — corrupted local state must never crash the client.
func GetJSON(s Store, logger *zap.Logger, key string, out any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		if logger != nil {
			logger.Warn("Discarding malformed persisted state",
				zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return true
}

// SetJSON encodes and write-through persists value under key.
func SetJSON(s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(key, raw)
}
