// Package importer reads shape order lists from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/shape"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Orders   []model.ShapeOrder
	Errors   []string
	Warnings []string
}

// ShapeCount returns the number of shapes the orders ask for.
func (r ImportResult) ShapeCount() int {
	n := 0
	for _, o := range r.Orders {
		n += o.Quantity
	}
	return n
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type     int
	Quantity int
	Rotation int
	Color    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":     {"type", "shape", "piece", "kind", "tetromino"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs"},
	"rotation": {"rotation", "angle", "rotate", "turn", "degrees"},
	"color":    {"color", "colour", "paint"},
}

// namedColors are the colour words accepted besides hex codes.
var namedColors = map[string]model.Color{
	"red":   model.ColorRed,
	"green": model.ColorGreen,
	"blue":  model.ColorBlue,
	"white": model.ColorWhite,
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (type, quantity, rotation, colour) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Type: -1, Quantity: -1, Rotation: -1, Color: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "type":
					if mapping.Type == -1 {
						mapping.Type = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "rotation":
					if mapping.Rotation == -1 {
						mapping.Rotation = i
					}
				case "color":
					if mapping.Color == -1 {
						mapping.Color = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Type: 0, Quantity: 1, Rotation: 2, Color: 3}, false
	}
	return mapping, true
}

// parseColor accepts a hex code or one of the palette names.
func parseColor(s string) (model.Color, bool) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, true
	}
	c, err := model.ParseColor(s)
	return c, err == nil
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a ShapeOrder from a row using the given column mapping.
// Returns the order, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.ShapeOrder, string, []string) {
	typeStr := getCell(row, mapping.Type)
	if typeStr == "" {
		return model.ShapeOrder{}, fmt.Sprintf("%s: Missing shape type", rowLabel), nil
	}
	t, err := model.ParseShapeType(typeStr)
	if err != nil {
		return model.ShapeOrder{}, fmt.Sprintf("%s: Unknown shape type '%s'", rowLabel, typeStr), nil
	}

	order := model.ShapeOrder{Type: t, Quantity: 1}

	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.ShapeOrder{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if qty <= 0 {
			return model.ShapeOrder{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
		order.Quantity = qty
	}

	if rotStr := strings.TrimSuffix(getCell(row, mapping.Rotation), "°"); rotStr != "" {
		deg, err := strconv.Atoi(strings.TrimSpace(rotStr))
		if err != nil {
			return model.ShapeOrder{}, fmt.Sprintf("%s: Invalid rotation '%s'", rowLabel, rotStr), nil
		}
		if deg%90 != 0 {
			return model.ShapeOrder{}, fmt.Sprintf("%s: Rotation %d is not a multiple of 90", rowLabel, deg), nil
		}
		order.Rotation = shape.NormalizeDegrees(deg)
	}

	var warnings []string
	if colStr := getCell(row, mapping.Color); colStr != "" {
		if c, ok := parseColor(colStr); ok {
			order.Color = &c
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown colour '%s', using the default", rowLabel, colStr))
		}
	}

	return order, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports shape orders from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return ImportCSVFromReader(bytes.NewReader(data), delimiter, result.Warnings...)
}

// ImportCSVFromReader imports shape orders from a CSV reader with a known
// delimiter. Any warnings passed in are kept at the head of the result.
func ImportCSVFromReader(reader io.Reader, delimiter rune, warnings ...string) ImportResult {
	result := ImportResult{Warnings: warnings}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportExcel imports shape orders from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Type == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Type")
			return result
		}
	} else if first := getCell(rows[0], 0); first != "" {
		// An unrecognised header still has to go; shape tags are one letter.
		if _, err := model.ParseShapeType(first); err != nil && len(first) > 1 {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		order, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Orders = append(result.Orders, order)
	}

	return result
}
