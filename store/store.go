// Package store provides the durable per-user key/value storage shared by
// the theme registry and the minigames.
//
// Reads never fail loudly: a missing key, an unavailable backend or a
// malformed value all read as "absent". Writes return an error that callers
// are expected to log and otherwise ignore.
package store

import (
	"encoding/json"
	"errors"
	"strconv"
)

// Persisted keys
const (
	KeyTheme          = "accent-key"
	KeyNarrativeNode  = "mega-node"
	KeyNarrativeStats = "mega-stats"
	KeyCardsBest      = "roguelite-best"
)

// ErrUnavailable is returned by writes when the backend cannot be used
var ErrUnavailable = errors.New("store unavailable")

// Store is a string key/value store
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool)
	// Set writes value under key
	Set(key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
}

// GetInt reads key as a base-10 integer
func GetInt(s Store, key string) (int, bool) {
	raw, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt writes n under key as a base-10 integer
func SetInt(s Store, key string, n int) error {
	return s.Set(key, strconv.Itoa(n))
}

// GetJSON decodes the JSON value under key into v
// v is left untouched when the key is absent or the value does not decode
func GetJSON(s Store, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

// SetJSON encodes v as JSON under key
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// Unavailable is a Store whose reads are always absent and whose writes always fail
type Unavailable struct{}

func (Unavailable) Get(string) (string, bool) { return "", false }
func (Unavailable) Set(string, string) error { return ErrUnavailable }
func (Unavailable) Delete(string) error { return ErrUnavailable }
