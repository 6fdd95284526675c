package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/BoxStack/internal/model"
)

// addGeneticFlags declares the optimizer flags on cmd, each mapped to its
// genetic.* config key.
func addGeneticFlags(cmd *cobra.Command) {
	d := model.DefaultGeneticSettings()
	f := cmd.Flags()
	f.Int("individuals", d.Individuals, "population size")
	f.Int("elites", d.Elites, "individuals kept unchanged each generation")
	f.Int("generations", d.Generations, "number of generations")
	f.Float64("crossover", d.CrossoverProb, "probability of inheriting the elite parent's gene")
	f.Float64("mutation", d.MutationProb, "fraction of each generation replaced by random individuals")
	f.Int("workers", d.Workers, "goroutines evaluating fitness")
	f.Int64("seed", d.Seed, "random seed")
	f.Bool("heuristic-seed", d.SeedHeuristic, "start with one largest-first individual")
	f.Int("log-every", d.LogEvery, "generations between progress log lines, 0 = never")

	configKey(f, "individuals", "genetic.individuals")
	configKey(f, "elites", "genetic.elites")
	configKey(f, "generations", "genetic.generations")
	configKey(f, "crossover", "genetic.crossover_prob")
	configKey(f, "mutation", "genetic.mutation_prob")
	configKey(f, "workers", "genetic.workers")
	configKey(f, "seed", "genetic.seed")
	configKey(f, "heuristic-seed", "genetic.seed_heuristic")
	configKey(f, "log-every", "genetic.log_every")

	f.String("profile", "", "settings profile (quick, default, thorough or a saved one)")
}

// addExportFlags declares the output format switches mapped to exports.*.
func addExportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("json", true, "save the run as JSON")
	f.Bool("pdf", false, "write a PDF report with per-bin projections")
	f.Bool("labels", false, "write a PDF sheet of QR item labels")
	f.Bool("dxf", false, "write a DXF wireframe of all bins")
	f.Bool("xlsx", false, "write an XLSX workbook")
	f.Bool("chart", false, "write a PNG fitness chart")

	for _, name := range []string{"json", "pdf", "labels", "dxf", "xlsx", "chart"} {
		configKey(f, name, "exports."+name)
	}
}

// resolveSettings returns the optimizer settings for cmd: the configured
// settings, or the named profile with any explicitly set flags on top.
func resolveSettings(cmd *cobra.Command) (model.GeneticSettings, error) {
	var settings model.GeneticSettings
	appCfg.ApplyToSettings(&settings)

	name, _ := cmd.Flags().GetString("profile")
	if name != "" {
		p, err := lookupProfile(name)
		if err != nil {
			return model.GeneticSettings{}, err
		}
		settings = p.Settings
		applyChangedFlags(cmd, &settings)
	}

	if err := settings.Validate(); err != nil {
		return model.GeneticSettings{}, err
	}
	return settings, nil
}

func applyChangedFlags(cmd *cobra.Command, s *model.GeneticSettings) {
	f := cmd.Flags()
	if f.Changed("individuals") {
		s.Individuals = viper.GetInt("genetic.individuals")
	}
	if f.Changed("elites") {
		s.Elites = viper.GetInt("genetic.elites")
	}
	if f.Changed("generations") {
		s.Generations = viper.GetInt("genetic.generations")
	}
	if f.Changed("crossover") {
		s.CrossoverProb = viper.GetFloat64("genetic.crossover_prob")
	}
	if f.Changed("mutation") {
		s.MutationProb = viper.GetFloat64("genetic.mutation_prob")
	}
	if f.Changed("workers") {
		s.Workers = viper.GetInt("genetic.workers")
	}
	if f.Changed("seed") {
		s.Seed = viper.GetInt64("genetic.seed")
	}
	if f.Changed("heuristic-seed") {
		s.SeedHeuristic = viper.GetBool("genetic.seed_heuristic")
	}
	if f.Changed("log-every") {
		s.LogEvery = viper.GetInt("genetic.log_every")
	}
}
