package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultGeneticSettings()

	if cfg.Genetic != defaults {
		t.Errorf("genetic defaults mismatch: config=%+v settings=%+v", cfg.Genetic, defaults)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("expected default log format=text, got %s", cfg.LogFormat)
	}
	if !cfg.Exports.JSON {
		t.Error("JSON export should be enabled by default")
	}
	if cfg.RecentProblems == nil {
		t.Error("RecentProblems should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Genetic.Individuals = 40
	cfg.Genetic.Elites = 4
	cfg.Genetic.Workers = 8

	s := DefaultGeneticSettings()
	cfg.ApplyToSettings(&s)

	if s.Individuals != 40 {
		t.Errorf("expected Individuals=40, got %d", s.Individuals)
	}
	if s.Elites != 4 {
		t.Errorf("expected Elites=4, got %d", s.Elites)
	}
	if s.Workers != 8 {
		t.Errorf("expected Workers=8, got %d", s.Workers)
	}
}

func TestAddRecentProblem(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProblem("a.dat", 2)
	cfg.AddRecentProblem("b.dat", 2)
	cfg.AddRecentProblem("a.dat", 2)
	cfg.AddRecentProblem("c.dat", 2)

	if len(cfg.RecentProblems) != 2 {
		t.Fatalf("expected 2 recent problems, got %d", len(cfg.RecentProblems))
	}
	if cfg.RecentProblems[0] != "c.dat" || cfg.RecentProblems[1] != "a.dat" {
		t.Errorf("unexpected recent order: %v", cfg.RecentProblems)
	}
}
