package store

import (
	"encoding/json"
	"fmt"
)

// GetJSON reads and unmarshals the value stored under key.
func GetJSON(s *Store, key string, v any) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// PutJSON marshals v with indentation and stores it under key.
func PutJSON(s *Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return s.Put(key, data)
}
