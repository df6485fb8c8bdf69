// Package export writes the visible record table to spreadsheet files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

const maxColumnWidth = 60

// Table is one sheet of text cells under a header row.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sheetName trims a title to the 31 characters a worksheet name allows and
// drops the characters Excel rejects.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Records"
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}

// Write encodes t as an XLSX workbook with a bold header row.
func Write(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(t.Sheet)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	widths := make([]int, len(t.Headers))
	all := append([][]string{t.Headers}, t.Rows...)
	for i, row := range all {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
			if j < len(widths) {
				if w := runewidth.StringWidth(v); w > widths[j] {
					widths[j] = w
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}
	if len(t.Headers) > 0 {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("export: header style: %w", err)
		}
	}
	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(w+2)); err != nil {
			return fmt.Errorf("export: column width: %w", err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// Save writes t into dir under a timestamped name derived from base and
// returns the path.
func Save(dir, base string, t Table, now time.Time) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create directory: %w", err)
	}
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		slug = "records"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.xlsx", slug, now.Format("20060102-150405")))
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export: save %s: %w", path, err)
	}
	return path, nil
}

// Read decodes the first sheet of an XLSX workbook, treating the first row
// as headers.
func Read(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("export: open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Table{}, errors.New("export: no worksheet found")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("export: read rows: %w", err)
	}
	t := Table{Sheet: sheet}
	if len(rows) == 0 {
		return t, nil
	}
	t.Headers = rows[0]
	t.Rows = rows[1:]
	return t, nil
}
