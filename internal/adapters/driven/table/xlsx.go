package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// readXLSXFile reads the first worksheet.
func readXLSXFile(path string) ([]driven.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]driven.Row, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return toRows(records[0], records[1:]), nil
}
