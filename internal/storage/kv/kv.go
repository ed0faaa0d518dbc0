// Package kv persists every entity collection as a JSON blob under a
// well-known key, all keys living in a single file. There are no
// transactions and no per-entity files: read-modify-write happens in
// memory under one lock and the whole map is flushed atomically.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/campuslink-dev/campuslink/internal/service"
)

const (
	keyPosts            = "posts"
	keyApplications     = "applications"
	keyInvitations      = "invitations"
	keyChatrooms        = "chatrooms"
	keyChatroomArchives = "chatroom_archives"
	keyNotifications    = "notifications"
	keyUsers            = "registered_users"
)

// Ensure Storage implements every engine interface at compile time.
var (
	_ service.PostStorage         = (*Storage)(nil)
	_ service.UserStorage         = (*Storage)(nil)
	_ service.ApplicationStorage  = (*Storage)(nil)
	_ service.InvitationStorage   = (*Storage)(nil)
	_ service.ChatroomStorage     = (*Storage)(nil)
	_ service.NotificationStorage = (*Storage)(nil)
)

type Storage struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// New opens (or lazily creates) the blob file at path. An empty path
// keeps everything in memory, which is what the tests use.
func New(path string) (*Storage, error) {
	s := &Storage{path: path, data: map[string]json.RawMessage{}}
	if path == "" {
		return s, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading kv store %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parsing kv store %s: %w", path, err)
	}
	return s, nil
}

func NewMemory() *Storage {
	s, _ := New("")
	return s
}

// load unmarshals the blob under key into out, leaving out untouched
// when the key was never written (the empty-array default of the
// store contract). Callers hold s.mu.
func (s *Storage) load(key string, out any) error {
	raw, ok := s.data[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// save replaces the blob under key and flushes the file. Callers hold s.mu.
func (s *Storage) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return s.flush()
}

// flush writes the whole map with a temp-file-plus-rename so a crash
// mid-write never leaves a truncated store behind.
func (s *Storage) flush() error {
	if s.path == "" {
		return nil
	}
	blob, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".kv_*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// loadSlice reads the collection under key, defaulting to an empty
// slice for keys that were never written.
func loadSlice[T any](s *Storage, key string) ([]T, error) {
	items := []T{}
	if err := s.load(key, &items); err != nil {
		return nil, err
	}
	return items, nil
}
