package sources

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	ex "bondspread/data/extensions"
	m "bondspread/data/models"
)

// LoadReferenceYieldsExcel reads a benchmark yield workbook
func LoadReferenceYieldsExcel(path string) ([]*m.ReferenceYield, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference yield workbook: %w", err)
	}
	defer f.Close()

	return readReferenceYields(f)
}

func ReadReferenceYields(r io.Reader) ([]*m.ReferenceYield, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference yield workbook: %w", err)
	}
	defer f.Close()

	return readReferenceYields(f)
}

// readReferenceYields takes the first sheet, which has no header row: column
// A is the date (serial or text), column B the yield in percent. Rows that do
// not parse, such as a title row, are skipped. Output is sorted by date.
func readReferenceYields(f *excelize.File) ([]*m.ReferenceYield, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	res := make([]*m.ReferenceYield, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		date, ok := parseCellDate(strings.TrimSpace(row[0]))
		if !ok {
			continue
		}

		yield, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil || !ex.IsFinite(yield) {
			continue
		}

		res = append(res, &m.ReferenceYield{Date: date, Yield: yield})
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}

func parseCellDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return ex.DateOnly(t), true
	}

	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
