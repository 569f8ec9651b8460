package sources

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	m "bondspread/data/models"
)

type column int

const (
	colDate column = iota
	colBondCode
	colIssuer
	colMaturity
	colYield
	colTradeCount
	colLendingBalance
)

// headers accepted for each column, the export uses the chinese names
var columnHeaders = map[column][]string{
	colDate:           {"日期", "date"},
	colBondCode:       {"标的债券代码", "bond_code"},
	colIssuer:         {"债务主体", "issuer"},
	colMaturity:       {"剩余期限", "remaining_maturity", "maturity"},
	colYield:          {"到期收益率", "yield_to_maturity", "ytm"},
	colTradeCount:     {"每日每券的成交笔数", "trade_count"},
	colLendingBalance: {"单券借贷余额（百万元）", "单券借贷余额(百万元)", "lending_balance"},
}

var requiredColumns = []column{colDate, colBondCode, colIssuer, colMaturity, colTradeCount}

var dateFormats = []string{
	time.DateOnly,
	"2006/01/02",
	"2006/1/2",
	time.DateTime,
	"20060102",
}

var ErrMissingColumn = errors.New("missing required column")

// LoadTradeRecordsCSV opens and parses a trade export
func LoadTradeRecordsCSV(path string) ([]*m.TradeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade export: %w", err)
	}
	defer file.Close()

	return ReadTradeRecords(file)
}

// ReadTradeRecords parses a trade export with a header row. Blank or non
// numeric cells become null rather than zero; a blank date leaves the zero
// time, which no date window matches. A date that is present but cannot be
// parsed fails the whole read.
func ReadTradeRecords(r io.Reader) ([]*m.TradeRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var res []*m.TradeRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		cell := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := &m.TradeRecord{
			BondCode:       parseText(cell(colBondCode)),
			Issuer:         parseText(cell(colIssuer)),
			Maturity:       parseNumber(cell(colMaturity)),
			Yield:          parseNumber(cell(colYield)),
			TradeCount:     parseNumber(cell(colTradeCount)),
			LendingBalance: parseNumber(cell(colLendingBalance)),
		}

		if raw := cell(colDate); raw != "" {
			if rec.Date, err = parseDate(raw); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		res = append(res, rec)
	}

	return res, nil
}

func mapColumns(header []string) (map[column]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		positions[strings.ToLower(h)] = i
	}

	index := make(map[column]int)
	for c, names := range columnHeaders {
		for _, name := range names {
			if i, ok := positions[strings.ToLower(name)]; ok {
				index[c] = i
				break
			}
		}
	}

	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnHeaders[c][0])
		}
	}

	return index, nil
}

func parseText(s string) null.String {
	return null.NewString(s, s != "")
}

func parseNumber(s string) null.Float {
	if s == "" {
		return null.Float{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
