// Package export provides rendering backends for cut layouts: PDF sheets,
// DXF drawings, and QR-coded piece labels. Backends consume the draw
// commands produced by the render package and never re-derive geometry.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
	"github.com/ouarzazisaid0/wood-opcut/internal/render"
)

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

// piecePalette cycles across placements on a sheet.
var piecePalette = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
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
	statsHeight  = 10.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a solution: one page per sheet
// with the rendered layout, followed by a summary page.
func ExportPDF(path string, sol model.Solution, params model.CutParams) error {
	if len(sol.Layouts) == 0 && len(sol.Infeasible) == 0 {
		return fmt.Errorf("nothing to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, layout := range sol.Layouts {
		pdf.AddPage()
		drawing := render.Sheet(layout)
		renderSheetPage(pdf, drawing, layout, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sol, params)

	return pdf.OutputFileAndClose(path)
}

// pageTransform maps sheet coordinates (origin lower-left, mm) onto the
// page drawing area (origin top-left).
type pageTransform struct {
	scale            float64
	offsetX, offsetY float64
	sheetH           float64
}

func (t pageTransform) point(x, y float64) (float64, float64) {
	return t.offsetX + x*t.scale, t.offsetY + (t.sheetH-y)*t.scale
}

func (t pageTransform) rect(x, y, w, h float64) (float64, float64, float64, float64) {
	px, py := t.point(x, y+h)
	return px, py, w * t.scale, h * t.scale
}

// renderSheetPage draws one sheet drawing on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, drawing render.SheetDrawing, layout model.SheetLayout, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%.0f x %.0f mm)",
		sheetNum, drawing.Sheet.Label, drawing.Size.W, drawing.Size.H)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Used: %.0f mm² | Waste: %.0f mm² | Kerf: %.0f mm² | Efficiency: %.1f%%",
		len(layout.Placements()), layout.UsedArea(), layout.WasteArea(), layout.KerfArea(), layout.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/drawing.Size.W, drawHeight/drawing.Size.H)
	canvasW := drawing.Size.W * scale

	t := pageTransform{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
		sheetH:  drawing.Size.H,
	}

	replayCommands(pdf, drawing.Commands, t)
}

// replayCommands plays a draw-command sequence onto the PDF page.
func replayCommands(pdf *fpdf.Fpdf, commands []render.Command, t pageTransform) {
	var curX, curY float64

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case render.MoveTo:
			curX, curY = t.point(c.X, c.Y)

		case render.LineTo:
			x, y := t.point(c.X, c.Y)
			pdf.SetDrawColor(180, 30, 30)
			pdf.SetLineWidth(0.2)
			pdf.Line(curX, curY, x, y)
			curX, curY = x, y

		case render.FillRect:
			x, y, w, h := t.rect(c.X, c.Y, c.W, c.H)
			switch c.Style {
			case render.StyleSheet:
				pdf.SetFillColor(210, 180, 140) // wood
			case render.StylePiece:
				col := piecePalette[c.Seq%len(piecePalette)]
				pdf.SetFillColor(col.R, col.G, col.B)
			case render.StyleOffcut:
				pdf.SetFillColor(235, 235, 215)
			case render.StyleWaste:
				pdf.SetFillColor(255, 200, 200)
			default:
				pdf.SetFillColor(255, 255, 255)
			}
			pdf.Rect(x, y, w, h, "F")

		case render.StrokeRect:
			x, y, w, h := t.rect(c.X, c.Y, c.W, c.H)
			if c.Style == render.StyleSheet {
				pdf.SetDrawColor(100, 100, 100)
				pdf.SetLineWidth(0.5)
			} else {
				pdf.SetDrawColor(30, 30, 30)
				pdf.SetLineWidth(0.3)
			}
			pdf.Rect(x, y, w, h, "D")

		case render.Label:
			x, y := t.point(c.X, c.Y)
			size := labelFontSize(c.Size * t.scale)
			pdf.SetFont("Helvetica", "", size)
			pdf.SetTextColor(0, 0, 0)
			if c.Style == render.StyleCut {
				pdf.SetTextColor(180, 30, 30)
			}
			textW := pdf.GetStringWidth(c.Text)
			pdf.SetXY(x-textW/2, y-2)
			pdf.CellFormat(textW, 4, c.Text, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, sol model.Solution, params model.CutParams) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Winning Strategy", sol.Strategy},
		{"Sheets Used", fmt.Sprintf("%d", sol.SheetsUsed())},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", sol.TotalEfficiency())},
		{"Total Waste", fmt.Sprintf("%.0f mm²", sol.TotalWaste())},
		{"Total Cut Length", fmt.Sprintf("%.0f mm", sol.TotalCutLength())},
		{"Pieces Placed", fmt.Sprintf("%d", sol.PlacedCount())},
		{"Unplaced Pieces", fmt.Sprintf("%d", sol.UnplacedCount())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 50, 35, 35, 50}
	headers := []string{"Sheet", "Stock", "Dimensions", "Pieces", "Efficiency", "Waste"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, layout := range sol.Layouts {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			layout.Sheet.Label,
			fmt.Sprintf("%.0f x %.0f mm", layout.Sheet.Size.W, layout.Sheet.Size.H),
			fmt.Sprintf("%d", len(layout.Placements())),
			fmt.Sprintf("%.1f%%", layout.Efficiency()),
			fmt.Sprintf("%.0f mm²", layout.WasteArea()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(sol.Infeasible) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Pieces", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, ip := range sol.Infeasible {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s (qty %d): %s", ip.Label, ip.Quantity, ip.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Parameters", "", 0, "L", false, 0, "")
	y += 9

	paramItems := []struct {
		label string
		value string
	}{
		{"Kerf", fmt.Sprintf("%.1f mm", params.Kerf)},
		{"Min Offcut", fmt.Sprintf("%.1f mm", params.MinOffcut)},
		{"Edge Trim", fmt.Sprintf("%.1f mm", params.EdgeTrim)},
		{"Rotation", params.Rotation.String()},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range paramItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by wood-opcut", "", 0, "C", false, 0, "")
}

// labelFontSize clamps a scaled text height to a readable point size.
func labelFontSize(scaledMM float64) float64 {
	switch {
	case scaledMM > 3:
		return 8
	case scaledMM > 1.5:
		return 7
	default:
		return 6
	}
}
