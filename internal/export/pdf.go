// Package export writes packing results to PDF reports, label sheets, DXF
// drawings, spreadsheets and charts.
package export

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxStack/internal/model"
)

// ErrEmptyResult is returned when a run has no packed bins to export.
var ErrEmptyResult = errors.New("no bins to export")

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(i int) itemColor {
	return itemColors[i%len(itemColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	viewHeight   = 70.0
	viewGap      = 8.0
	rowHeight    = 5.0
)

// projection selects the two axes drawn in an orthographic view and the
// depth axis used to order items back to front.
type projection struct {
	title  string
	u, v   int
	depth  int
	nearHi bool // larger depth is nearer the viewer
}

var projections = []projection{
	{title: "Top (X-Y)", u: model.AxisX, v: model.AxisY, depth: model.AxisZ, nearHi: true},
	{title: "Front (X-Z)", u: model.AxisX, v: model.AxisZ, depth: model.AxisY, nearHi: false},
	{title: "Side (Y-Z)", u: model.AxisY, v: model.AxisZ, depth: model.AxisX, nearHi: true},
}

// ExportPDF generates a PDF report for a run: a summary page followed by one
// page per bin with three orthographic views and a placement table.
func ExportPDF(path string, run model.RunResult) error {
	if len(run.Best.Bins) == 0 {
		return ErrEmptyResult
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, run)

	for _, bin := range run.Best.Bins {
		pdf.AddPage()
		renderBinPage(pdf, bin)
	}

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws one bin on the current page.
func renderBinPage(pdf *fpdf.Fpdf, bin model.BinResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%s)", bin.Index+1, bin.Size)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Load: %d | Volume: %d | Efficiency: %.1f%%",
		len(bin.Placements), bin.Load, bin.TotalVolume(), bin.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	viewWidth := (pageWidth - marginLeft - marginRight - 2*viewGap) / 3
	for i, proj := range projections {
		x := marginLeft + float64(i)*(viewWidth+viewGap)
		drawProjection(pdf, bin, proj, x, drawAreaTop, viewWidth, viewHeight)
	}

	drawPlacementTable(pdf, bin, drawAreaTop+viewHeight+10)
}

// drawProjection renders the bin outline and every placement projected on
// the (u, v) plane, far items first so near ones paint over them.
func drawProjection(pdf *fpdf.Fpdf, bin model.BinResult, proj projection, x, y, w, h float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 4, proj.title, "", 0, "L", false, 0, "")
	y += 5
	h -= 5

	bu := float64(bin.Size[proj.u])
	bv := float64(bin.Size[proj.v])
	scale := math.Min(w/bu, h/bv)
	canvasW := bu * scale
	canvasH := bv * scale
	offsetX := x + (w-canvasW)/2
	// v grows upward on the page
	baseY := y + canvasH

	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(offsetX, y, canvasW, canvasH, "FD")

	order := make([]int, len(bin.Placements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da := bin.Placements[order[a]].Box.Min[proj.depth]
		db := bin.Placements[order[b]].Box.Min[proj.depth]
		if proj.nearHi {
			return da < db
		}
		return da > db
	})

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for _, idx := range order {
		p := bin.Placements[idx]
		col := colorFor(idx)
		pdf.SetFillColor(col.R, col.G, col.B)
		px := offsetX + float64(p.Box.Min[proj.u])*scale
		pw := float64(p.Box.Max[proj.u]-p.Box.Min[proj.u]) * scale
		ph := float64(p.Box.Max[proj.v]-p.Box.Min[proj.v]) * scale
		py := baseY - float64(p.Box.Max[proj.v])*scale
		pdf.Rect(px, py, pw, ph, "FD")
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	dims := fmt.Sprintf("%d x %d", bin.Size[proj.u], bin.Size[proj.v])
	dimsW := pdf.GetStringWidth(dims)
	pdf.SetXY(offsetX+(canvasW-dimsW)/2, baseY+1)
	pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

var placementColumns = []struct {
	header string
	width  float64
}{
	{"#", 12}, {"Item", 60}, {"Original", 40}, {"Orientation", 28},
	{"Placed", 40}, {"Position", 45}, {"Volume", 30},
}

func drawPlacementHeader(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for _, c := range placementColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(c.width, rowHeight, c.header, "1", 0, "C", true, 0, "")
		x += c.width
	}
}

// drawPlacementTable lists the bin's placements, continuing on new pages
// when the table runs off the bottom.
func drawPlacementTable(pdf *fpdf.Fpdf, bin model.BinResult, y float64) {
	drawPlacementHeader(pdf, y)
	y += rowHeight

	for i, p := range bin.Placements {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawPlacementHeader(pdf, y)
			y += rowHeight
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Item.DisplayName(),
			p.Item.Size.String(),
			p.Orientation.String(),
			p.Size().String(),
			fmt.Sprintf("(%d, %d, %d)", p.Box.Min[0], p.Box.Min[1], p.Box.Min[2]),
			fmt.Sprintf("%d", p.Volume()),
		}

		col := colorFor(i)
		pdf.SetFont("Helvetica", "", 8)
		x := marginLeft
		for j, cell := range row {
			fill := j == 0
			if fill {
				pdf.SetFillColor(col.R, col.G, col.B)
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(placementColumns[j].width, rowHeight, cell, "1", 0, "C", fill, 0, "")
			x += placementColumns[j].width
		}
		y += rowHeight
	}
}

// renderSummaryPage draws run statistics and the per-bin breakdown.
func renderSummaryPage(pdf *fpdf.Fpdf, run model.RunResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := "Packing Summary"
	if run.Problem != "" {
		title += ": " + run.Problem
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bin Size", run.BinSize.String()},
		{"Items", fmt.Sprintf("%d", run.ItemCount)},
		{"Bins Used", fmt.Sprintf("%d", run.Best.BinsUsed)},
		{"Volume Lower Bound", fmt.Sprintf("%d", run.LowerBound)},
		{"Fitness", fmt.Sprintf("%.4f", run.Best.Fitness)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", run.Best.TotalEfficiency())},
		{"Generations", fmt.Sprintf("%d", run.Generations())},
		{"Evaluations", fmt.Sprintf("%d", run.Evaluations)},
		{"Population / Elites", fmt.Sprintf("%d / %d", run.Settings.Individuals, run.Settings.Elites)},
		{"Crossover / Mutation", fmt.Sprintf("%.2f / %.2f", run.Settings.CrossoverProb, run.Settings.MutationProb)},
		{"Seed", fmt.Sprintf("%d", run.Settings.Seed)},
		{"Elapsed", run.Elapsed.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 6
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 30, 40, 40, 35}
	headers := []string{"Bin", "Items", "Load", "Volume", "Efficiency"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, bin := range run.Best.Bins {
		if y+6 > pageHeight-marginBottom {
			break
		}
		rowData := []string{
			fmt.Sprintf("%d", bin.Index+1),
			fmt.Sprintf("%d", len(bin.Placements)),
			fmt.Sprintf("%d", bin.Load),
			fmt.Sprintf("%d", bin.TotalVolume()),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoxStack - 3D Bin Packing Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
