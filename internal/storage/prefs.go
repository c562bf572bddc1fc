package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/readme/internal/model"
)

// LoadPrefs reads user preferences from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadPrefs(path string) (*model.UserPrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			prefs := model.DefaultUserPrefs()
			// Non-fatal: return defaults even if save fails
			_ = SavePrefs(path, &prefs)
			return &prefs, nil
		}
		return nil, err
	}

	prefs := model.DefaultUserPrefs()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, path, err)
	}

	return &prefs, nil
}

// SavePrefs writes user preferences to the JSON file.
// Creates the directory if it doesn't exist.
func SavePrefs(path string, prefs *model.UserPrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
