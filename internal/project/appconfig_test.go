package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxStack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := model.DefaultAppConfig()
			cfg.Genetic.Individuals = 250
			cfg.Genetic.Seed = 99
			cfg.OutputDir = "/tmp/runs"
			cfg.Exports.PDF = true
			cfg.LogFormat = "json"
			cfg.RecentProblems = []string{"/data/100.0.dat", "/data/100.1.dat"}

			if err := SaveAppConfig(path, cfg); err != nil {
				t.Fatalf("SaveAppConfig failed: %v", err)
			}

			loaded, err := LoadAppConfig(path)
			if err != nil {
				t.Fatalf("LoadAppConfig failed: %v", err)
			}

			if loaded.Genetic != cfg.Genetic {
				t.Errorf("expected genetic settings %+v, got %+v", cfg.Genetic, loaded.Genetic)
			}
			if loaded.OutputDir != "/tmp/runs" {
				t.Errorf("expected OutputDir=/tmp/runs, got %s", loaded.OutputDir)
			}
			if !loaded.Exports.PDF || !loaded.Exports.JSON {
				t.Errorf("expected PDF and JSON exports, got %+v", loaded.Exports)
			}
			if loaded.LogFormat != "json" {
				t.Errorf("expected LogFormat=json, got %s", loaded.LogFormat)
			}
			if len(loaded.RecentProblems) != 2 {
				t.Errorf("expected 2 recent problems, got %d", len(loaded.RecentProblems))
			}
		})
	}
}

func TestSaveAppConfig_FormatByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	jsonPath := filepath.Join(dir, "config.json")

	if err := SaveAppConfig(yamlPath, model.DefaultAppConfig()); err != nil {
		t.Fatal(err)
	}
	if err := SaveAppConfig(jsonPath, model.DefaultAppConfig()); err != nil {
		t.Fatal(err)
	}

	yamlData, _ := os.ReadFile(yamlPath)
	if !strings.Contains(string(yamlData), "output_dir: out") {
		t.Errorf("expected YAML output, got:\n%s", yamlData)
	}
	jsonData, _ := os.ReadFile(jsonPath)
	if !strings.HasPrefix(string(jsonData), "{") {
		t.Errorf("expected JSON output, got:\n%s", jsonData)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.yaml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.Genetic != defaults.Genetic {
		t.Errorf("expected default genetic settings, got %+v", cfg.Genetic)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected OutputDir=out, got %s", cfg.OutputDir)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("genetic:\n  generations: 50\nlog_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Genetic.Generations != 50 {
		t.Errorf("expected 50 generations, got %d", cfg.Genetic.Generations)
	}
	if cfg.Genetic.Individuals != 100 {
		t.Errorf("expected default individuals to survive, got %d", cfg.Genetic.Individuals)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.RecentProblems == nil {
		t.Error("RecentProblems should never be nil")
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected an error for an invalid config file")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("expected config.yaml, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".boxstack" {
		t.Errorf("expected .boxstack directory, got %s", filepath.Dir(path))
	}
}
