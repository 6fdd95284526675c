package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/BoxStack/internal/engine"
	"github.com/piwi3910/BoxStack/internal/export"
	"github.com/piwi3910/BoxStack/internal/importer"
	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/piwi3910/BoxStack/internal/project"
)

const maxRecentProblems = 10

var solveCmd = &cobra.Command{
	Use:   "solve <problem-file>",
	Short: "Optimize the packing of a problem file",
	Long: `Load a problem and search for the packing that uses the fewest bins.

Instance files (.dat, .txt) and JSON problems carry their own bin size;
item lists (.csv, .xlsx) are packed into --bin.

Example:
  boxstack solve Data/Dataset/100.0.dat --generations 200 --workers 4 --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	addGeneticFlags(solveCmd)
	addExportFlags(solveCmd)
	solveCmd.Flags().String("bin", "100x100x100", "bin size for item lists")
	solveCmd.Flags().Duration("timeout", 0, "stop after this long and keep the best packing so far")
}

func runSolve(cmd *cobra.Command, args []string) error {
	problem, err := loadProblem(cmd, args[0])
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	run, err := engine.Solve(ctx, problem, settings, engine.WithLogger(logger))
	if err != nil {
		stopped := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		if !stopped || run.Best.BinsUsed == 0 {
			return err
		}
		fmt.Fprintln(out, warnStyle.Render("stopped early, showing the best packing so far: "+err.Error()))
	}

	fmt.Fprintln(out, renderRunSummary(run))

	files, err := writeExports(run, appCfg.OutputDir, appCfg.Exports)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(out, labelStyle.Render("wrote")+f)
	}

	rememberProblem(args[0])
	return nil
}

// loadProblem imports path, logging any import warnings.
func loadProblem(cmd *cobra.Command, path string) (model.Problem, error) {
	binSize := model.V(100, 100, 100)
	if f := cmd.Flags().Lookup("bin"); f != nil {
		v, err := parseVec(f.Value.String())
		if err != nil {
			return model.Problem{}, err
		}
		binSize = v
	}

	problem, warnings, err := importer.Import(path, binSize)
	for _, w := range warnings {
		logger.Warn("import warning", "file", path, "warning", w)
	}
	if err != nil {
		return model.Problem{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	logger.Debug("problem loaded", "problem", problem.Name, "items", len(problem.Items), "bin", problem.BinSize.String())
	return problem, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// runBaseName returns the file stem shared by all outputs of a run.
func runBaseName(run model.RunResult) string {
	name := unsafeName.ReplaceAllString(run.Problem, "_")
	if name == "" {
		name = "run"
	}
	id := run.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return name
	}
	return name + "-" + id
}

// writeExports writes the selected output files for run into dir and
// returns their paths.
func writeExports(run model.RunResult, dir string, opts model.ExportOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	base := filepath.Join(dir, runBaseName(run))

	steps := []struct {
		enabled bool
		path    string
		write   func(string) error
	}{
		{opts.JSON, base + ".json", func(p string) error { return project.SaveResult(p, run) }},
		{opts.PDF, base + ".pdf", func(p string) error { return export.ExportPDF(p, run) }},
		{opts.Labels, base + "-labels.pdf", func(p string) error { return export.ExportLabels(p, run) }},
		{opts.DXF, base + ".dxf", func(p string) error { return export.ExportDXF(p, run) }},
		{opts.XLSX, base + ".xlsx", func(p string) error { return export.ExportXLSX(p, run) }},
		{opts.Chart, base + "-fitness.png", func(p string) error { return export.ExportChart(p, run.History) }},
	}

	var written []string
	for _, s := range steps {
		if !s.enabled {
			continue
		}
		if err := s.write(s.path); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", filepath.Base(s.path), err)
		}
		logger.Debug("export written", "path", s.path)
		written = append(written, s.path)
	}
	return written, nil
}

// rememberProblem records path in the config file's recent list when a
// config file exists.
func rememberProblem(path string) {
	cfgPath := viper.ConfigFileUsed()
	if cfgPath == "" {
		return
	}
	if _, err := os.Stat(cfgPath); err != nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		logger.Warn("could not update recent problems", "error", err)
		return
	}
	cfg.AddRecentProblem(path, maxRecentProblems)
	if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
		logger.Warn("could not update recent problems", "error", err)
	}
}
