package model

// SettingsProfile is a named set of optimizer settings.
type SettingsProfile struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Settings    GeneticSettings `json:"settings" yaml:"settings"`
	IsBuiltIn   bool            `json:"is_built_in" yaml:"-"`
}

// BuiltInProfiles returns the profiles shipped with the application.
// "default" matches DefaultGeneticSettings.
func BuiltInProfiles() []SettingsProfile {
	quick := DefaultGeneticSettings()
	quick.Individuals = 30
	quick.Elites = 3
	quick.Generations = 100
	quick.SeedHeuristic = true

	thorough := DefaultGeneticSettings()
	thorough.Individuals = 300
	thorough.Elites = 30
	thorough.Generations = 2000
	thorough.SeedHeuristic = true
	thorough.LogEvery = 50

	return []SettingsProfile{
		{Name: "quick", Description: "Small population for fast previews", Settings: quick, IsBuiltIn: true},
		{Name: "default", Description: "Reference parameters (100 individuals, 1000 generations)", Settings: DefaultGeneticSettings(), IsBuiltIn: true},
		{Name: "thorough", Description: "Large population for hard instances", Settings: thorough, IsBuiltIn: true},
	}
}

// FindProfile returns the first profile named name, searching custom
// profiles before the built-in ones.
func FindProfile(custom []SettingsProfile, name string) (SettingsProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range BuiltInProfiles() {
		if p.Name == name {
			return p, true
		}
	}
	return SettingsProfile{}, false
}

// ProfileNames lists built-in then custom profile names.
func ProfileNames(custom []SettingsProfile) []string {
	var names []string
	for _, p := range BuiltInProfiles() {
		names = append(names, p.Name)
	}
	for _, p := range custom {
		names = append(names, p.Name)
	}
	return names
}
