package export

import (
	"fmt"

	"github.com/piwi3910/BoxStack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// binSpacing is the gap along X between consecutive bins, as a fraction of
// the bin length.
const binSpacing = 0.2

var layerColors = []color.ColorNumber{
	color.Red, color.Yellow, color.Green, color.Cyan, color.Blue, color.Magenta,
}

// ExportDXF writes every bin and placed item as a 3D wireframe. Bins are
// laid out side by side along X, each on its own layer with its items.
func ExportDXF(path string, run model.RunResult) error {
	if len(run.Best.Bins) == 0 {
		return ErrEmptyResult
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("BINS", color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}

	offset := 0
	for i, bin := range run.Best.Bins {
		shift := model.V(offset, 0, 0)
		offset += bin.Size[model.AxisX] + int(float64(bin.Size[model.AxisX])*binSpacing)

		if err := d.ChangeLayer("BINS"); err != nil {
			return fmt.Errorf("failed to select layer: %w", err)
		}
		if err := wireframe(d, model.Box{Max: bin.Size}, shift); err != nil {
			return err
		}
		textHeight := float64(bin.Size.MaxComponent()) * 0.05
		if _, err := d.Text(fmt.Sprintf("Bin %d", bin.Index+1), float64(shift[model.AxisX]), -2*textHeight, 0, textHeight); err != nil {
			return fmt.Errorf("failed to write bin label: %w", err)
		}

		layer := fmt.Sprintf("BIN_%d", bin.Index+1)
		if _, err := d.AddLayer(layer, layerColors[i%len(layerColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layer, err)
		}
		for _, p := range bin.Placements {
			if err := wireframe(d, p.Box, shift); err != nil {
				return err
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// boxEdges lists the 12 edges of a box as pairs of corner indexes, where
// bit 0, 1 and 2 of a corner index select max X, Y and Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

func corner(b model.Box, idx int) [3]float64 {
	var c [3]float64
	for a := model.AxisX; a <= model.AxisZ; a++ {
		if idx&(1<<a) != 0 {
			c[a] = float64(b.Max[a])
		} else {
			c[a] = float64(b.Min[a])
		}
	}
	return c
}

// wireframe draws the 12 edges of b translated by shift on the current layer.
func wireframe(d *drawing.Drawing, b model.Box, shift model.Vec3) error {
	moved := model.Box{Min: b.Min.Add(shift), Max: b.Max.Add(shift)}
	for _, e := range boxEdges {
		p, q := corner(moved, e[0]), corner(moved, e[1])
		if _, err := d.Line(p[0], p[1], p[2], q[0], q[1], q[2]); err != nil {
			return fmt.Errorf("failed to draw edge of %s: %w", b, err)
		}
	}
	return nil
}
