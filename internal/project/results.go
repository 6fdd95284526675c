package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxStack/internal/model"
)

// SaveResult writes a run to path as indented JSON.
func SaveResult(path string, run model.RunResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// LoadResult reads a run saved by SaveResult.
func LoadResult(path string) (model.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to read result: %w", err)
	}
	var run model.RunResult
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunResult{}, fmt.Errorf("failed to parse result %s: %w", path, err)
	}
	return run, nil
}
