package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/shelfpack/internal/engine"
	"github.com/piwi3910/shelfpack/internal/model"
)

// LabelInfo holds the data encoded into each shape label's QR code.
type LabelInfo struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Rotation int      `json:"rotation"`
	Color    string   `json:"color"`
	Anchor   [3]int   `json:"anchor"`
	Cells    [][3]int `json:"cells"`
	BayCells [3]int   `json:"bay"`
	rgb      model.Color
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels writes one QR-coded label per placed shape, laid out on a
// 3 x 10 label sheet (Avery 5160, US Letter).
func ExportLabels(path string, st engine.State) error {
	labels := CollectLabelInfos(st)
	if len(labels) == 0 {
		return fmt.Errorf("no shapes placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%s", info.Index, info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding + 5
	textW := labelWidth - qrSize - 3*labelPadding - 5

	// colour tab down the left edge
	r, g, b := info.rgb.RGB()
	pdf.SetFillColor(r, g, b)
	pdf.Rect(x+labelPadding, y+labelPadding, 3, labelHeight-2*labelPadding, "F")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("#%d  %s-shape", info.Index, info.Type), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("ID %s  %s", info.ID, info.Color), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	anchor := fmt.Sprintf("Cell (%d, %d, %d) of %dx%dx%d", info.Anchor[0], info.Anchor[1], info.Anchor[2],
		info.BayCells[0], info.BayCells[1], info.BayCells[2])
	pdf.CellFormat(textW, 3, anchor, "", 1, "L", false, 0, "")

	if info.Rotation != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Rotated %d\xb0", info.Rotation), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts the label data for every shape in the bay.
func CollectLabelInfos(st engine.State) []LabelInfo {
	d := st.Dimensions
	var labels []LabelInfo
	for i, s := range st.Shapes {
		a := anchorCell(s, d.CellSize)
		cells := engine.Cells(s, d.CellSize)
		info := LabelInfo{
			Index:    i + 1,
			ID:       s.ID,
			Type:     string(s.Type),
			Rotation: s.Rotation,
			Color:    s.Color.Hex(),
			Anchor:   [3]int{a.X, a.Y, a.Z},
			Cells:    make([][3]int, len(cells)),
			BayCells: [3]int{d.WidthBack, d.HeightLeft, d.DepthFront},
			rgb:      s.Color,
		}
		for j, c := range cells {
			info.Cells[j] = [3]int{c.X, c.Y, c.Z}
		}
		labels = append(labels, info)
	}
	return labels
}
