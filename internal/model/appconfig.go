package model

// ExportOptions selects which files a solve run writes.
type ExportOptions struct {
	JSON   bool `json:"json" yaml:"json" mapstructure:"json"`
	PDF    bool `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Labels bool `json:"labels" yaml:"labels" mapstructure:"labels"`
	DXF    bool `json:"dxf" yaml:"dxf" mapstructure:"dxf"`
	XLSX   bool `json:"xlsx" yaml:"xlsx" mapstructure:"xlsx"`
	Chart  bool `json:"chart" yaml:"chart" mapstructure:"chart"`
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default optimizer settings applied to new runs
	Genetic GeneticSettings `json:"genetic" yaml:"genetic" mapstructure:"genetic"`

	// Output
	OutputDir string        `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`
	Exports   ExportOptions `json:"exports" yaml:"exports" mapstructure:"exports"`

	// Observability
	LogFormat    string `json:"log_format" yaml:"log_format" mapstructure:"log_format"` // "text" or "json"
	LogLevel     string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	OtelEndpoint string `json:"otel_endpoint" yaml:"otel_endpoint" mapstructure:"otel_endpoint"`

	RecentProblems []string `json:"recent_problems" yaml:"recent_problems" mapstructure:"recent_problems"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultGeneticSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Genetic:        DefaultGeneticSettings(),
		OutputDir:      "out",
		Exports:        ExportOptions{JSON: true},
		LogFormat:      "text",
		LogLevel:       "info",
		RecentProblems: []string{},
	}
}

// ApplyToSettings copies the stored optimizer defaults into s.
func (c AppConfig) ApplyToSettings(s *GeneticSettings) {
	*s = c.Genetic
}

// AddRecentProblem records path at the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProblem(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProblems {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProblems = recent
}
