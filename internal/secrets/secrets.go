package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Store is a process-wide key-value store for sensitive settings, kept
// outside the tabular database. Values are persisted to a single JSON file
// with owner-only permissions on every Set.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// Open loads the store from path, starting empty if the file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	return s, nil
}

// Get returns the stored value for name, or "" when absent.
func (s *Store) Get(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

// Set stores the value for name and persists the store immediately.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal secrets: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	return nil
}
