package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BoxStack/internal/model"
)

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")
	require.NoError(t, ExportXLSX(path, buildTestRun()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, placementsSheet, historySheet}, f.GetSheetList())

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, summary)
	assert.Equal(t, []string{"Problem", "fixture"}, summary[0])

	placements, err := f.GetRows(placementsSheet)
	require.NoError(t, err)
	require.Len(t, placements, 5)
	assert.Equal(t, "Bin", placements[0][0])
	// Tote: bin 1, HWL at (0,0,4), placed 10x10x4
	assert.Equal(t, []string{"1", "2", "Tote", "4", "10", "10", "HWL", "0", "0", "4", "10", "10", "4"}, placements[2])
	assert.Equal(t, "2", placements[4][0])

	history, err := f.GetRows(historySheet)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestExportXLSX_EmptyResult(t *testing.T) {
	err := ExportXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), model.RunResult{})
	assert.True(t, errors.Is(err, ErrEmptyResult))
}
