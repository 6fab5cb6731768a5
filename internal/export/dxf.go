package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	dxfdrawing "github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
	"github.com/ouarzazisaid0/wood-opcut/internal/render"
)

// DXF layer names. CAM tools key their tool paths off these.
const (
	layerSheet  = "SHEET"
	layerPieces = "PIECES"
	layerCuts   = "CUTS"
	layerLabels = "LABELS"
)

// sheetGap is the spacing between sheets laid side by side, in mm.
const sheetGap = 100.0

// ExportDXF writes all sheet layouts of a solution into a single DXF file.
// Sheets are placed side by side along the X axis. Coordinates stay in
// millimetres with the origin at each sheet's lower left corner, so the
// file can feed a CNC workflow directly.
func ExportDXF(path string, sol model.Solution) error {
	if len(sol.Layouts) == 0 {
		return fmt.Errorf("nothing to export")
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{layerSheet, color.White},
		{layerPieces, color.Green},
		{layerCuts, color.Red},
		{layerLabels, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	var offsetX float64
	for _, layout := range sol.Layouts {
		drawing := render.Sheet(layout)
		if err := writeSheetEntities(d, drawing, offsetX); err != nil {
			return fmt.Errorf("sheet %d: %w", layout.SheetIndex+1, err)
		}
		offsetX += drawing.Size.W + sheetGap
	}

	return d.SaveAs(path)
}

// writeSheetEntities replays one sheet's draw commands as DXF entities.
// DXF shares the render coordinate convention (y up), so only the per
// sheet X offset is applied.
func writeSheetEntities(d *dxfdrawing.Drawing, drawing render.SheetDrawing, offsetX float64) error {
	var curX, curY float64

	for _, cmd := range drawing.Commands {
		switch c := cmd.(type) {
		case render.MoveTo:
			curX, curY = c.X+offsetX, c.Y

		case render.LineTo:
			if err := d.ChangeLayer(layerCuts); err != nil {
				return err
			}
			if _, err := d.Line(curX, curY, 0, c.X+offsetX, c.Y, 0); err != nil {
				return err
			}
			curX, curY = c.X+offsetX, c.Y

		case render.FillRect:
			// Fills carry no outline information useful to CAM.

		case render.StrokeRect:
			layer := layerPieces
			if c.Style == render.StyleSheet {
				layer = layerSheet
			}
			if err := d.ChangeLayer(layer); err != nil {
				return err
			}
			x := c.X + offsetX
			if _, err := d.LwPolyline(true,
				[]float64{x, c.Y, 0},
				[]float64{x + c.W, c.Y, 0},
				[]float64{x + c.W, c.Y + c.H, 0},
				[]float64{x, c.Y + c.H, 0},
			); err != nil {
				return err
			}

		case render.Label:
			if err := d.ChangeLayer(layerLabels); err != nil {
				return err
			}
			if _, err := d.Text(c.Text, c.X+offsetX, c.Y, 0, c.Size); err != nil {
				return err
			}
		}
	}
	return nil
}
