package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	helpline "github.com/mudasir256/helplineapp"
)

// Storage key names. AccessTokenKey is checked first; TokenKey is the legacy
// fallback some installs still carry.
const (
	AccessTokenKey  = "accessToken"
	TokenKey        = "token"
	RefreshTokenKey = "refreshToken"
	UserKey         = "user"
)

// Storage is the app's local persistent key-value store: profile, tokens and
// the last-known-good sponsorship mirror all live here as one JSON file.
type Storage struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

func OpenStorage(path string) (*Storage, error) {
	s := &Storage{
		path: path,
		data: map[string]json.RawMessage{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt store is treated as empty rather than fatal; it only
		// holds mirrors of backend state.
		s.data = map[string]json.RawMessage{}
	}
	return s, nil
}

func (s *Storage) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (s *Storage) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

func (s *Storage) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return s.flushLocked()
}

func (s *Storage) flushLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// BearerToken returns the auth token to attach to requests: the current key
// first, the legacy key as fallback. Empty when signed out.
func (s *Storage) BearerToken() string {
	var token string
	if ok, _ := s.Get(AccessTokenKey, &token); ok && token != "" {
		return token
	}
	if ok, _ := s.Get(TokenKey, &token); ok {
		return token
	}
	return ""
}

func (s *Storage) SetTokens(access, refresh string) error {
	if err := s.Set(AccessTokenKey, access); err != nil {
		return err
	}
	if refresh != "" {
		return s.Set(RefreshTokenKey, refresh)
	}
	return nil
}

func (s *Storage) User() (helpline.User, bool) {
	var u helpline.User
	ok, err := s.Get(UserKey, &u)
	return u, ok && err == nil && u.Email != ""
}

func (s *Storage) SetUser(u helpline.User) error {
	return s.Set(UserKey, u)
}

// ClearSession removes the profile and both token generations.
func (s *Storage) ClearSession() error {
	return s.Delete(UserKey, AccessTokenKey, TokenKey, RefreshTokenKey)
}
