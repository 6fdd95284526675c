package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/piwi3910/BoxStack/internal/project"
	"github.com/piwi3910/BoxStack/internal/telemetry"
)

// Version is overridden at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

const envPrefix = "BOXSTACK"

var (
	cfgFile string
	appCfg  = model.DefaultAppConfig()
	logger  = telemetry.DiscardLogger()

	shutdownTracing func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "boxstack",
	Short: "3D bin packing optimizer",
	Long: `BoxStack - pack boxes into as few bins as possible.

A random-key genetic algorithm searches item orders and orientations;
each candidate is packed with empty maximal spaces and the
farthest-from-top-right corner rule.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}
		if err := loadConfig(); err != nil {
			return err
		}

		l, err := telemetry.NewLogger(cmd.ErrOrStderr(), appCfg.LogFormat, appCfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(logger)

		shutdown, err := telemetry.Init(cmd.Context(), "boxstack", Version, appCfg.OtelEndpoint)
		if err != nil {
			return err
		}
		shutdownTracing = shutdown
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return flushTracing()
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if ferr := flushTracing(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func flushTracing() error {
	if shutdownTracing == nil {
		return nil
	}
	shutdown := shutdownTracing
	shutdownTracing = nil
	return shutdown(context.Background())
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.boxstack/config.yaml)")
	flags.String("output-dir", "out", "directory for result files")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("otel-endpoint", "", "OTLP/HTTP endpoint for traces")

	configKey(flags, "output-dir", "output_dir")
	configKey(flags, "log-format", "log_format")
	configKey(flags, "log-level", "log_level")
	configKey(flags, "otel-endpoint", "otel_endpoint")

	registerDefaults()

	rootCmd.AddCommand(solveCmd, generateCmd, compareCmd, reportCmd, configCmd)
}

// registerDefaults makes every config key known to viper so that
// BOXSTACK_* environment variables apply even without a config file.
func registerDefaults() {
	d := model.DefaultAppConfig()
	defaults := map[string]interface{}{
		"genetic.individuals":    d.Genetic.Individuals,
		"genetic.elites":         d.Genetic.Elites,
		"genetic.generations":    d.Genetic.Generations,
		"genetic.crossover_prob": d.Genetic.CrossoverProb,
		"genetic.mutation_prob":  d.Genetic.MutationProb,
		"genetic.workers":        d.Genetic.Workers,
		"genetic.seed":           d.Genetic.Seed,
		"genetic.seed_heuristic": d.Genetic.SeedHeuristic,
		"genetic.log_every":      d.Genetic.LogEvery,
		"output_dir":             d.OutputDir,
		"exports.json":           d.Exports.JSON,
		"exports.pdf":            d.Exports.PDF,
		"exports.labels":         d.Exports.Labels,
		"exports.dxf":            d.Exports.DXF,
		"exports.xlsx":           d.Exports.XLSX,
		"exports.chart":          d.Exports.Chart,
		"log_format":             d.LogFormat,
		"log_level":              d.LogLevel,
		"otel_endpoint":          d.OtelEndpoint,
		"recent_problems":        d.RecentProblems,
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(project.DefaultConfigPath())
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file, if present, and decodes the merged
// flags, environment and file values into appCfg.
func loadConfig() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read config %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	cfg := model.DefaultAppConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	appCfg = cfg
	return nil
}

const configKeyAnnotation = "boxstack_config_key"

// configKey marks flag name as the command line source of a config key.
// Several commands may carry the same key; bindFlags binds whichever
// command actually runs.
func configKey(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

// bindFlags binds every annotated flag of cmd, inherited ones included.
func bindFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok || err != nil {
			return
		}
		err = viper.BindPFlag(keys[0], f)
	})
	return err
}
