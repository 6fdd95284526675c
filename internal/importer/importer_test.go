package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Length,Width,Height,Qty\nCrate,60,30,20,2\nTote,40,30,30,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Length;Width;Height;Qty\nCrate;60;30;20;2\nTote;40;30;30;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tWidth\tHeight\tQty\nCrate\t60\t30\t20\t2\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Length|Width|Height|Qty\nCrate|60|30|20|2\nTote|40|30|30|1\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Length", "Width", "Height", "Quantity"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Length: 1, Width: 2, Height: 3, Quantity: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "H", "W", "L", "SKU"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 4, Length: 3, Width: 2, Height: 1, Quantity: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Crate", "60", "30", "20", "2"})

	if isHeader {
		t.Error("numeric row should not be detected as header")
	}
	if mapping.Length != 1 || mapping.Height != 3 || mapping.Quantity != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "Label,Length,Width,Height,Quantity\nCrate,60,30,20,2\nTote,40,30,30,1\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items after quantity expansion, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Crate" || result.Items[1].Label != "Crate" {
		t.Errorf("expected two Crate items first, got %q and %q", result.Items[0].Label, result.Items[1].Label)
	}
	if result.Items[0].ID == result.Items[1].ID {
		t.Error("expanded items must have distinct IDs")
	}
	if result.Items[2].Size != model.V(40, 30, 30) {
		t.Errorf("expected Tote size 40x30x30, got %s", result.Items[2].Size)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	input := "Crate,60,30,20,1\nTote,40,30,30\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_MissingQuantityColumn(t *testing.T) {
	input := "Name;L;W;H\nCrate;60;30;20\n"
	result := ImportCSVFromReader(strings.NewReader(input), ';')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "assuming 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing-quantity warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	input := "Label,Length,Width\nCrate,60,30\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected an error for missing Height column")
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected error to name Height, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	input := "Label,Length,Width,Height,Qty\nBad,abc,30,20,1\nNeg,60,-1,20,1\nZero,60,30,20,0\nGood,10,10,10,1\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].Label != "Good" {
		t.Errorf("expected only the Good item, got %+v", result.Items)
	}
}

func TestImportCSVFromReader_FractionalRoundedUp(t *testing.T) {
	input := "Label,Length,Width,Height\nCrate,59.2,30,20\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Size[0] != 60 {
		t.Errorf("expected length rounded up to 60, got %d", result.Items[0].Size[0])
	}
}

func TestImportCSVFromReader_EmptyRowsAndLabels(t *testing.T) {
	input := "Label,Length,Width,Height\n,10,10,10\n\n,5,5,5\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Item 1" || result.Items[1].Label != "Item 2" {
		t.Errorf("expected generated labels, got %q and %q", result.Items[0].Label, result.Items[1].Label)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected an error for empty input")
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte("Label;Length;Width;Height;Qty\nCrate;60;30;20;2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

// ─── ImportResult Tests ────────────────────────────────────

func TestImportResultProblem(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Crate,60,30,20,2\n"), ',')

	p, err := result.Problem("crates", model.V(100, 100, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "crates" || p.NItems != 2 || p.TotalVolume != 72000 {
		t.Errorf("unexpected problem header: %+v", p)
	}

	if _, err := result.Problem("crates", model.V(10, 10, 10)); !errors.Is(err, model.ErrItemTooLarge) {
		t.Errorf("expected ErrItemTooLarge for small bin, got %v", err)
	}

	bad := ImportResult{Errors: []string{"Line 2: Invalid length 'x'"}}
	if _, err := bad.Problem("bad", model.V(10, 10, 10)); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Length", "Width", "Height", "Quantity"},
		{"Crate", 60, 30, 20, 2},
		{"Tote", 40, 30, 30, 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Size != model.V(60, 30, 20) {
		t.Errorf("expected 60x30x20, got %s", result.Items[0].Size)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Crate", 60, 30, 20, 1},
		{"Tote", 40, 30, 30, 1},
	})

	result := ImportExcel(path)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}
