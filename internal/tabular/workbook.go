package tabular

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads one sheet of an .xlsx file into rows keyed by its first
// row. An empty sheet name selects the first sheet in the workbook. Cell
// values go through the same cleaning as delimited text.
func ReadWorkbook(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rowsFromCells(cells), nil
}

func rowsFromCells(cells [][]string) []Row {
	if len(cells) == 0 {
		return nil
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, values := range cells[1:] {
		rows = append(rows, buildRow(headers, values))
	}
	return rows
}
