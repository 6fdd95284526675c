package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxStack/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.SettingsProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.SettingsProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SettingsProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.SettingsProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles %s: %w", path, err)
	}

	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// UpsertProfile replaces the custom profile with the same name or appends
// a new one. Built-in names cannot be overwritten.
func UpsertProfile(profiles []model.SettingsProfile, p model.SettingsProfile) ([]model.SettingsProfile, error) {
	if p.Name == "" {
		return nil, errors.New("profile has no name")
	}
	for _, b := range model.BuiltInProfiles() {
		if b.Name == p.Name {
			return nil, fmt.Errorf("profile %q is built in", p.Name)
		}
	}
	if err := p.Settings.Validate(); err != nil {
		return nil, err
	}

	p.IsBuiltIn = false
	out := make([]model.SettingsProfile, 0, len(profiles)+1)
	replaced := false
	for _, existing := range profiles {
		if existing.Name == p.Name {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, p)
	}
	return out, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.SettingsProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.SettingsProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SettingsProfile{}, err
	}

	var profile model.SettingsProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.SettingsProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.SettingsProfile{}, errors.New("imported profile has no name")
	}
	if err := profile.Settings.Validate(); err != nil {
		return model.SettingsProfile{}, err
	}
	return profile, nil
}
