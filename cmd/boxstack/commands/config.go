package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/piwi3910/BoxStack/internal/project"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration, settings profiles and backups",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
		if err := project.SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("wrote")+path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appCfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("# "+configPath()))
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List built-in and saved settings profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		custom, err := project.LoadCustomProfiles(profilesPath())
		if err != nil {
			return err
		}

		var rows [][]string
		add := func(p model.SettingsProfile, kind string) {
			s := p.Settings
			rows = append(rows, []string{
				p.Name, kind,
				fmt.Sprintf("%d/%d", s.Individuals, s.Elites),
				fmt.Sprintf("%d", s.Generations),
				fmt.Sprintf("%.2f", s.CrossoverProb),
				fmt.Sprintf("%.2f", s.MutationProb),
				p.Description,
			})
		}
		for _, p := range model.BuiltInProfiles() {
			add(p, "built-in")
		}
		for _, p := range custom {
			add(p, "saved")
		}
		fmt.Fprint(cmd.OutOrStdout(), renderTable(
			[]string{"Name", "Kind", "Pop/Elites", "Generations", "Crossover", "Mutation", "Description"}, rows))
		return nil
	},
}

var configSaveProfileCmd = &cobra.Command{
	Use:   "save-profile <name>",
	Short: "Save the effective optimizer settings as a named profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		desc, _ := cmd.Flags().GetString("description")

		path := profilesPath()
		custom, err := project.LoadCustomProfiles(path)
		if err != nil {
			return err
		}
		custom, err = project.UpsertProfile(custom, model.SettingsProfile{
			Name:        args[0],
			Description: desc,
			Settings:    settings,
		})
		if err != nil {
			return err
		}
		if err := project.SaveCustomProfiles(path, custom); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("saved profile")+args[0])
		return nil
	},
}

var configExportProfileCmd = &cobra.Command{
	Use:   "export-profile <name> <file>",
	Short: "Write one profile to a JSON file for sharing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupProfile(args[0])
		if err != nil {
			return err
		}
		if err := project.ExportProfile(args[1], p); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("wrote")+args[1])
		return nil
	},
}

var configImportProfileCmd = &cobra.Command{
	Use:   "import-profile <file>",
	Short: "Add a shared profile to the saved profiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.ImportProfile(args[0])
		if err != nil {
			return err
		}
		path := profilesPath()
		custom, err := project.LoadCustomProfiles(path)
		if err != nil {
			return err
		}
		if custom, err = project.UpsertProfile(custom, p); err != nil {
			return err
		}
		if err := project.SaveCustomProfiles(path, custom); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("imported profile")+p.Name)
		return nil
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export <bundle.json>",
	Short: "Back up the config, saved profiles and saved runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		custom, err := project.LoadCustomProfiles(profilesPath())
		if err != nil {
			return err
		}

		var runs []model.RunResult
		if dir, _ := cmd.Flags().GetString("runs"); dir != "" {
			if runs, err = loadRuns(dir); err != nil {
				return err
			}
		}

		if err := project.ExportBundle(args[0], appCfg, custom, runs); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPairs("Backup written", []kv{
			{"File", args[0]},
			{"Profiles", fmt.Sprintf("%d", len(custom))},
			{"Runs", fmt.Sprintf("%d", len(runs))},
		}))
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <bundle.json>",
	Short: "Restore a backup bundle",
	Long: `Restore a bundle written by "config export": the config file is
replaced, profiles are merged into the saved ones, and runs are written
to the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := project.ImportBundle(args[0])
		if err != nil {
			return err
		}

		if err := project.SaveAppConfig(configPath(), bundle.Config); err != nil {
			return err
		}

		path := profilesPath()
		custom, err := project.LoadCustomProfiles(path)
		if err != nil {
			return err
		}
		skipped := 0
		for _, p := range bundle.Profiles {
			merged, err := project.UpsertProfile(custom, p)
			if err != nil {
				logger.Warn("skipping profile", "profile", p.Name, "error", err)
				skipped++
				continue
			}
			custom = merged
		}
		if err := project.SaveCustomProfiles(path, custom); err != nil {
			return err
		}

		for _, run := range bundle.Runs {
			dst := filepath.Join(appCfg.OutputDir, runBaseName(run)+".json")
			if err := project.SaveResult(dst, run); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderPairs("Backup restored", []kv{
			{"Created", bundle.CreatedAt},
			{"Profiles", fmt.Sprintf("%d (skipped %d)", len(bundle.Profiles)-skipped, skipped)},
			{"Runs", fmt.Sprintf("%d", len(bundle.Runs))},
		}))
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	addGeneticFlags(configSaveProfileCmd)
	configSaveProfileCmd.Flags().String("description", "", "profile description")
	configExportCmd.Flags().String("runs", "", "directory of saved run files to include")

	configCmd.AddCommand(
		configInitCmd,
		configShowCmd,
		configProfilesCmd,
		configSaveProfileCmd,
		configExportProfileCmd,
		configImportProfileCmd,
		configExportCmd,
		configImportCmd,
	)
}

// configPath returns the config file in use, or the default location.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return project.DefaultConfigPath()
}

// profilesPath keeps saved profiles next to the config file.
func profilesPath() string {
	if cfgFile == "" {
		return project.DefaultProfilesPath()
	}
	return filepath.Join(filepath.Dir(cfgFile), "profiles.json")
}

// lookupProfile finds a saved or built-in profile by name.
func lookupProfile(name string) (model.SettingsProfile, error) {
	custom, err := project.LoadCustomProfiles(profilesPath())
	if err != nil {
		return model.SettingsProfile{}, err
	}
	p, ok := model.FindProfile(custom, name)
	if !ok {
		return model.SettingsProfile{}, fmt.Errorf("unknown profile %q (available: %s)", name, joinNames(model.ProfileNames(custom)))
	}
	return p, nil
}

// loadRuns reads every saved run in dir, skipping files that are not runs.
func loadRuns(dir string) ([]model.RunResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("runs directory %s does not exist", dir)
		}
	}
	sort.Strings(paths)

	var runs []model.RunResult
	for _, p := range paths {
		run, err := project.LoadResult(p)
		if err != nil || run.ID == "" {
			logger.Debug("skipping file", "path", p, "error", err)
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}
