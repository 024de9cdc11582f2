// Package ml wraps the pre-trained model artifacts as thin inference
// adapters. Each artifact is a JSON file exported by the offline training
// pipeline, loaded once at startup and treated as read-only afterwards.
package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrEmptyInput is returned when an adapter is given blank text.
	ErrEmptyInput = errors.New("ml: empty input text")

	// ErrArtifactMissing is returned at load time when the artifact file
	// does not exist.
	ErrArtifactMissing = errors.New("ml: model artifact missing")
)

// loadArtifact reads and unmarshals a JSON model artifact into dst.
func loadArtifact(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal model artifact %s: %w", path, err)
	}
	return nil
}
