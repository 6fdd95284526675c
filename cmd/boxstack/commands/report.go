package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/piwi3910/BoxStack/internal/project"
)

var reportCmd = &cobra.Command{
	Use:   "report <result.json>",
	Short: "Show a saved run and write its reports",
	Long: `Load a run saved by solve, print its summary and per-bin placements,
and write any of the selected export formats again.

Example:
  boxstack report out/100.0-1a2b3c4d.json --pdf --xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	addExportFlags(reportCmd)
	reportCmd.Flags().Bool("placements", false, "list every placement")
}

func runReport(cmd *cobra.Command, args []string) error {
	run, err := project.LoadResult(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderRunSummary(run))

	binRows := make([][]string, 0, len(run.Best.Bins))
	for _, b := range run.Best.Bins {
		binRows = append(binRows, []string{
			fmt.Sprintf("%d", b.Index+1),
			fmt.Sprintf("%d", len(b.Placements)),
			fmt.Sprintf("%d", b.Load),
			fmt.Sprintf("%.1f%%", b.Efficiency()),
		})
	}
	fmt.Fprint(out, renderTable([]string{"Bin", "Items", "Load", "Fill"}, binRows))

	if show, _ := cmd.Flags().GetBool("placements"); show {
		fmt.Fprint(out, renderTable(
			[]string{"Bin", "Item", "Orientation", "Position", "Size"},
			placementRows(run.Best)))
	}

	// The JSON export would overwrite the loaded file with itself.
	opts := appCfg.Exports
	opts.JSON = false
	files, err := writeExports(run, appCfg.OutputDir, opts)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(out, labelStyle.Render("wrote")+f)
	}
	return nil
}

func placementRows(res model.PackingResult) [][]string {
	var rows [][]string
	for _, b := range res.Bins {
		for _, p := range b.Placements {
			rows = append(rows, []string{
				fmt.Sprintf("%d", b.Index+1),
				p.Item.DisplayName(),
				p.Orientation.String(),
				fmt.Sprintf("(%d, %d, %d)", p.Box.Min[0], p.Box.Min[1], p.Box.Min[2]),
				p.Size().String(),
			})
		}
	}
	return rows
}
