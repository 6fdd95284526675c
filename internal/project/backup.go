package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/BoxStack/internal/model"
)

// BundleVersion is written into every bundle.
const BundleVersion = "1.0.0"

// Bundle is the top-level structure for backing up the configuration,
// custom profiles and saved runs in one file.
type Bundle struct {
	Version   string                  `json:"version"`
	CreatedAt string                  `json:"created_at"`
	Config    model.AppConfig         `json:"config"`
	Profiles  []model.SettingsProfile `json:"profiles"`
	Runs      []model.RunResult       `json:"runs"`
}

// ExportBundle writes config, profiles and runs to a single JSON file.
func ExportBundle(exportPath string, config model.AppConfig, profiles []model.SettingsProfile, runs []model.RunResult) error {
	bundle := Bundle{
		Version:   BundleVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Profiles:  profiles,
		Runs:      runs,
	}
	if bundle.Profiles == nil {
		bundle.Profiles = []model.SettingsProfile{}
	}
	if bundle.Runs == nil {
		bundle.Runs = []model.RunResult{}
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}
	return nil
}

// ImportBundle reads a bundle written by ExportBundle. The caller decides
// what to apply.
func ImportBundle(importPath string) (Bundle, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read bundle file: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("failed to parse bundle file: %w", err)
	}
	if bundle.Version == "" {
		return Bundle{}, fmt.Errorf("invalid bundle file: missing version field")
	}
	if bundle.Config.RecentProblems == nil {
		bundle.Config.RecentProblems = []string{}
	}
	for i := range bundle.Profiles {
		bundle.Profiles[i].IsBuiltIn = false
	}
	return bundle, nil
}
