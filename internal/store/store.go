// Package store persists registered profiles and their cached statuses
// under the user data dir, so the dashboard can show fleet state without
// re-verifying every profile on startup.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store manages profile registration persistence.
type Store struct {
	path     string
	mu       sync.RWMutex
	version  string
	profiles []Registered
}

// NewStore creates a Store instance and loads it from disk.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    path,
		version: "1.0",
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := s.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		s.profiles = []Registered{}
	}

	return s, nil
}

// Load reads the store from disk.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profile store: %w", err)
	}

	s.version = file.Version
	s.profiles = file.Profiles

	return nil
}

// Save writes the store to disk atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := storeFile{
		Version:  s.version,
		Profiles: s.profiles,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// List returns all registered profiles.
func (s *Store) List() []Registered {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Registered, len(s.profiles))
	copy(result, s.profiles)
	return result
}

// Get retrieves a profile by ID.
func (s *Store) Get(id string) (Registered, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}

	return Registered{}, fmt.Errorf("profile not found: %s", id)
}

// Add adds a new profile to the store.
func (s *Store) Add(p Registered) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if existing.ID == p.ID {
			return fmt.Errorf("profile with ID %s already exists", p.ID)
		}
	}

	s.profiles = append(s.profiles, p)
	return nil
}

// Update updates an existing profile.
func (s *Store) Update(p Registered) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.profiles {
		if existing.ID == p.ID {
			s.profiles[i] = p
			return nil
		}
	}

	return fmt.Errorf("profile not found: %s", p.ID)
}

// Remove removes a profile from the store.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.profiles {
		if p.ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("profile not found: %s", id)
}
