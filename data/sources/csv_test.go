package sources

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chineseExport = "\ufeff日期,标的债券代码,债务主体,剩余期限,到期收益率,每日每券的成交笔数,单券借贷余额（百万元）\n" +
	"2024-01-02,2400001,中华人民共和国财政部,29.8,2.45,31,1200\n" +
	"2024-01-02,2400002,中华人民共和国财政部,abc,2.47,12,\n" +
	"2024-01-03,,中华人民共和国财政部,29.7,2.44,NaN,300\n" +
	",2400003,中华人民共和国财政部,29.9,2.50,4,10\n"

func TestReadTradeRecords_ChineseHeaders(t *testing.T) {
	res, err := ReadTradeRecords(strings.NewReader(chineseExport))
	require.NoError(t, err)
	require.Len(t, res, 4)

	first := res[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "2400001", first.BondCode.String)
	assert.Equal(t, "中华人民共和国财政部", first.Issuer.String)
	assert.Equal(t, 29.8, first.Maturity.Float64)
	assert.Equal(t, 2.45, first.Yield.Float64)
	assert.Equal(t, 31.0, first.TradeCount.Float64)
	assert.Equal(t, 1200.0, first.LendingBalance.Float64)
	assert.True(t, first.IsComplete())
}

func TestReadTradeRecords_MissingAndNonNumericCellsAreNull(t *testing.T) {
	res, err := ReadTradeRecords(strings.NewReader(chineseExport))
	require.NoError(t, err)

	// non numeric maturity is missing, not zero
	assert.False(t, res[1].Maturity.Valid)
	assert.False(t, res[1].LendingBalance.Valid)
	assert.False(t, res[1].IsComplete())

	assert.False(t, res[2].BondCode.Valid)
	assert.False(t, res[2].TradeCount.Valid, "NaN trade count should be null")

	assert.True(t, res[3].Date.IsZero(), "blank date should stay zero")
}

func TestReadTradeRecords_EnglishHeadersAnyOrder(t *testing.T) {
	data := "trade_count,issuer,bond_code,date,maturity\n" +
		"5,X,A,2024/3/4,29\n"

	res, err := ReadTradeRecords(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "A", res[0].BondCode.String)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), res[0].Date)
	assert.False(t, res[0].Yield.Valid, "absent optional column should be null")
}

func TestReadTradeRecords_MissingRequiredColumn(t *testing.T) {
	_, err := ReadTradeRecords(strings.NewReader("date,bond_code,issuer,maturity\n2024-01-02,A,X,29\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestReadTradeRecords_MalformedDateFails(t *testing.T) {
	data := "date,bond_code,issuer,maturity,trade_count\n" +
		"not-a-date,A,X,29,1\n"

	_, err := ReadTradeRecords(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadTradeRecords_EmptyInput(t *testing.T) {
	_, err := ReadTradeRecords(strings.NewReader(""))
	assert.Error(t, err)
}

func TestLoadTradeRecordsCSV_MissingFile(t *testing.T) {
	_, err := LoadTradeRecordsCSV("does/not/exist.csv")
	assert.Error(t, err)
}
