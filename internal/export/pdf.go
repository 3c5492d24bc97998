// Package export writes a packed bay to printable and CAD formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/shelfpack/internal/bay"
	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// flatView describes one flattened page of the bay.
type flatView struct {
	title      string
	cells      []ProjectedCell
	cols, rows int
	upward     bool // V grows toward the top of the page
	background model.Color
	across     string
	along      string
}

// ExportPDF writes a bay plan: a top view, a front elevation and a summary
// page listing every shape.
func ExportPDF(path string, st engine.State) error {
	if err := st.Dimensions.Validate(); err != nil {
		return fmt.Errorf("cannot export bay: %w", err)
	}
	d := st.Dimensions

	top, _ := bay.FindView(string(bay.ViewTop))
	front, _ := bay.FindView(string(bay.ViewFront))

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderViewPage(pdf, st, flatView{
		title:      fmt.Sprintf("Bay plan, top view (%d x %d cells)", d.WidthBack, d.DepthFront),
		cells:      TopView(st),
		cols:       d.WidthBack,
		rows:       d.DepthFront,
		background: top.Background(st.Colors),
		across:     bay.FormatCM(d.Width()),
		along:      bay.FormatCM(d.Depth()),
	})

	pdf.AddPage()
	renderViewPage(pdf, st, flatView{
		title:      fmt.Sprintf("Front elevation (%d x %d cells)", d.WidthBack, d.HeightLeft),
		cells:      FrontView(st),
		cols:       d.WidthBack,
		rows:       d.HeightLeft,
		upward:     true,
		background: front.Background(st.Colors),
		across:     bay.FormatCM(d.Width()),
		along:      bay.FormatCM(d.Height()),
	})

	pdf.AddPage()
	renderSummaryPage(pdf, st)

	return pdf.OutputFileAndClose(path)
}

func renderViewPage(pdf *fpdf.Fpdf, st engine.State, v flatView) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, v.title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Shapes: %d | Cell: %s | Visible cells: %d | Fill: %.1f%%",
		len(st.Shapes), bay.FormatCM(st.Dimensions.CellSize), len(v.cells), FillRatio(st)*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	cell := math.Min(drawWidth/float64(v.cols), drawHeight/float64(v.rows))

	canvasW := float64(v.cols) * cell
	canvasH := float64(v.rows) * cell
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	r, g, b := v.background.RGB()
	pdf.SetFillColor(r, g, b)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetDrawColor(170, 170, 170)
	pdf.SetLineWidth(0.15)
	for i := 1; i < v.cols; i++ {
		x := offsetX + float64(i)*cell
		pdf.Line(x, offsetY, x, offsetY+canvasH)
	}
	for i := 1; i < v.rows; i++ {
		y := offsetY + float64(i)*cell
		pdf.Line(offsetX, y, offsetX+canvasW, y)
	}

	for _, pc := range v.cells {
		row := pc.V
		if v.upward {
			row = v.rows - 1 - pc.V
		}
		px := offsetX + float64(pc.U)*cell
		py := offsetY + float64(row)*cell

		r, g, b := pc.Color.RGB()
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, cell, cell, "FD")

		if cell > 6 {
			label := fmt.Sprintf("%d", pc.Shape+1)
			pdf.SetFont("Helvetica", "", labelFontSize(cell))
			pdf.SetTextColor(textOn(pc.Color))
			w := pdf.GetStringWidth(label)
			pdf.SetXY(px+(cell-w)/2, py+cell/2-2)
			pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, v.across, v.along, offsetX, offsetY, canvasW, canvasH)
	drawShapeLegend(pdf, st.Shapes, offsetY+canvasH+6)
}

// drawDimensionAnnotations adds the bay measurements outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, across, along string, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	wLabelW := pdf.GetStringWidth(across)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, across, "", 0, "C", false, 0, "")

	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(along)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, along, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawShapeLegend renders one swatch per shape below the drawing.
func drawShapeLegend(pdf *fpdf.Fpdf, shapes []model.PlacedShape, startY float64) {
	if len(shapes) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, s := range shapes {
		label := fmt.Sprintf("%d %s %d\xb0", i+1, s.Type, s.Rotation)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		r, g, b := s.Color.RGB()
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.1)
		pdf.Rect(xPos, startY+0.5, 3, 3, "FD")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, st engine.State) {
	d := st.Dimensions

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Bay Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Cell Size", bay.FormatCM(d.CellSize)},
		{"Width (back)", fmt.Sprintf("%d cells, %s", d.WidthBack, bay.FormatCM(d.Width()))},
		{"Height (left)", fmt.Sprintf("%d cells, %s", d.HeightLeft, bay.FormatCM(d.Height()))},
		{"Depth (front)", fmt.Sprintf("%d cells, %s", d.DepthFront, bay.FormatCM(d.Depth()))},
		{"Shapes", fmt.Sprintf("%d", len(st.Shapes))},
		{"Fill", fmt.Sprintf("%.1f%%", FillRatio(st)*100)},
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
	pdf.CellFormat(100, 7, "Shapes", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 35, 25, 30, 35, 45, 80}
	headers := []string{"#", "ID", "Type", "Rotation", "Colour", "Anchor (x, y, z)", "Cells"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	var stray []int
	pdf.SetFont("Helvetica", "", 9)
	for i, s := range st.Shapes {
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		if outside(s, d) {
			stray = append(stray, i)
		}

		a := anchorCell(s, d.CellSize)
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			s.ID,
			string(s.Type),
			fmt.Sprintf("%d\xb0", s.Rotation),
			s.Color.Hex(),
			fmt.Sprintf("%d, %d, %d", a.X, a.Y, a.Z),
			cellList(engine.Cells(s, d.CellSize)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}

		r, g, b := s.Color.RGB()
		pdf.SetFillColor(r, g, b)
		pdf.Rect(marginLeft+colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3]+2, y+1.5, 3, 3, "F")
		y += 6
	}

	if len(stray) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Shapes outside the bay", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, i := range stray {
			s := st.Shapes[i]
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- #%d %s (%s)", i+1, s.Type, s.ID), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShelfPack", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size that fits inside a cell of the given width.
func labelFontSize(cell float64) float64 {
	switch {
	case cell > 20:
		return 9
	case cell > 12:
		return 8
	default:
		return 6
	}
}

// textOn picks black or white text for legibility on c.
func textOn(c model.Color) (r, g, b int) {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum < 128 {
		return 255, 255, 255
	}
	return 0, 0, 0
}

func cellList(cells []engine.Cell) string {
	s := ""
	for i, c := range cells {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
