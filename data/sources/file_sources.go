package sources

import (
	"context"
	"time"

	ex "bondspread/data/extensions"
	m "bondspread/data/models"
)

// CSVTradeSource serves trade records straight from an export on disk. The
// file is read on every call so a replaced export is picked up without a
// restart.
type CSVTradeSource struct {
	Path string
}

func (s CSVTradeSource) GetTradeRecords(ctx context.Context, issuer string, start, end time.Time) ([]*m.TradeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := LoadTradeRecordsCSV(s.Path)
	if err != nil {
		return nil, err
	}

	// rows with a blank issuer are kept for the selector to drop while cleaning
	return ex.FilterMultiplePtr(records, func(tr *m.TradeRecord) bool {
		return (!tr.Issuer.Valid || tr.Issuer.String == issuer) && ex.InDateRange(tr.Date, start, end)
	}), nil
}

type ExcelReferenceSource struct {
	Path string
}

func (s ExcelReferenceSource) GetReferenceYields(ctx context.Context, start, end time.Time) ([]*m.ReferenceYield, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	yields, err := LoadReferenceYieldsExcel(s.Path)
	if err != nil {
		return nil, err
	}

	return ex.FilterMultiplePtr(yields, func(y *m.ReferenceYield) bool {
		return ex.InDateRange(y.Date, start, end)
	}), nil
}
