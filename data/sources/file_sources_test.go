package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVTradeSource_FiltersIssuerAndWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	body := "date,bond_code,issuer,maturity,trade_count\n" +
		"2024-01-02,A,MOF,29.5,10\n" +
		"2024-01-03,A,MOF,29.5,11\n" +
		"2024-01-03,B,CDB,9.5,4\n" +
		"2024-01-09,A,MOF,29.5,12\n" +
		"2024-01-03,C,,29.5,7\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	src := CSVTradeSource{Path: path}
	res, err := src.GetTradeRecords(context.Background(), "MOF",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// blank issuer rows pass through for cleaning to drop
	require.Len(t, res, 3)
	assert.Equal(t, "A", res[0].BondCode.String)
	assert.False(t, res[2].Issuer.Valid)
}

func TestCSVTradeSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CSVTradeSource{Path: "unused.csv"}.GetTradeRecords(ctx, "MOF", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelReferenceSource_FiltersWindow(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"2024-01-02", 2.41}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2024-01-03", 2.43}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"2024-02-01", 2.30}))

	path := filepath.Join(t.TempDir(), "yields.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src := ExcelReferenceSource{Path: path}
	res, err := src.GetReferenceYields(context.Background(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 2.43, res[1].Yield)
}
