package fsio

import (
	"encoding/json"
	"path/filepath"
)

// WriteJSON writes a JSON file atomically via a temp file and rename.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer Remove(tmpPath) // ensure cleanup on error

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return Rename(tmpPath, path)
}

// ReadJSON reads a JSON file and unmarshals it into v
func ReadJSON(path string, v any) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
