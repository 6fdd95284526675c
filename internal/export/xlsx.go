package export

import (
	"fmt"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
	historySheet    = "History"
)

// ExportXLSX writes a workbook with the run summary, one row per placement
// and the per-generation fitness history.
func ExportXLSX(path string, run model.RunResult) error {
	if len(run.Best.Bins) == 0 {
		return ErrEmptyResult
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{placementsSheet, historySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	summary := [][]interface{}{
		{"Problem", run.Problem},
		{"Run ID", run.ID},
		{"Bin Size", run.BinSize.String()},
		{"Items", run.ItemCount},
		{"Bins Used", run.Best.BinsUsed},
		{"Lower Bound", run.LowerBound},
		{"Fitness", run.Best.Fitness},
		{"Efficiency %", run.Best.TotalEfficiency()},
		{"Generations", run.Generations()},
		{"Evaluations", run.Evaluations},
		{"Seed", run.Settings.Seed},
		{"Elapsed", run.Elapsed.String()},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}

	placements := [][]interface{}{
		{"Bin", "Item ID", "Label", "Length", "Width", "Height", "Orientation", "X", "Y", "Z", "DX", "DY", "DZ"},
	}
	for _, bin := range run.Best.Bins {
		for _, p := range bin.Placements {
			size := p.Size()
			placements = append(placements, []interface{}{
				bin.Index + 1, p.Item.ID, p.Item.DisplayName(),
				p.Item.Size[0], p.Item.Size[1], p.Item.Size[2],
				p.Orientation.String(),
				p.Box.Min[0], p.Box.Min[1], p.Box.Min[2],
				size[0], size[1], size[2],
			})
		}
	}
	if err := writeRows(f, placementsSheet, placements); err != nil {
		return err
	}

	history := [][]interface{}{{"Generation", "Best", "Mean", "Bins Used"}}
	for _, g := range run.History {
		history = append(history, []interface{}{g.Generation, g.Best, g.Mean, g.BinsUsed})
	}
	if err := writeRows(f, historySheet, history); err != nil {
		return err
	}

	for _, sheet := range []string{placementsSheet, historySheet} {
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to create cell reference: %w", err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
