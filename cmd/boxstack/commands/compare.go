package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxStack/internal/engine"
)

var compareCmd = &cobra.Command{
	Use:   "compare <problem-file>",
	Short: "Run what-if optimizer settings side by side",
	Long: `Solve the same problem with the current settings and a few
variations (larger population, more mutants, unbiased crossover and
the heuristic seed toggled) and print one row per scenario, preceded
by the largest-first heuristic without any search.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	addGeneticFlags(compareCmd)
	compareCmd.Flags().String("bin", "100x100x100", "bin size for item lists")
}

func runCompare(cmd *cobra.Command, args []string) error {
	problem, err := loadProblem(cmd, args[0])
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	baseline, err := engine.HeuristicBaseline(problem)
	if err != nil {
		return err
	}
	rows := [][]string{{
		"Largest First",
		fmt.Sprintf("%d", baseline.BinsUsed),
		fmt.Sprintf("%.4f", baseline.Fitness),
		fmt.Sprintf("%.1f%%", baseline.TotalEfficiency()),
		"-",
	}}

	results, err := engine.CompareScenarios(cmd.Context(), problem, engine.BuildDefaultScenarios(settings), engine.WithLogger(logger))
	if err != nil {
		return err
	}
	for _, r := range results {
		rows = append(rows, []string{
			r.Scenario.Name,
			fmt.Sprintf("%d", r.BinsUsed),
			fmt.Sprintf("%.4f", r.Fitness),
			fmt.Sprintf("%.1f%%", r.Efficiency),
			fmt.Sprintf("%d", r.Result.Evaluations),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: %d items, lower bound %d bins", problem.Name, len(problem.Items), problem.LowerBound())))
	fmt.Fprint(out, renderTable([]string{"Scenario", "Bins", "Fitness", "Efficiency", "Evaluations"}, rows))
	return nil
}
