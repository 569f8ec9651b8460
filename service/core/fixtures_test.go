package core

import (
	"context"
	"errors"
	"time"

	"github.com/guregu/null/v6"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
)

const testIssuer = "中华人民共和国财政部"

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func trade(code string, date time.Time, maturity, yield, trades float64) *dm.TradeRecord {
	return &dm.TradeRecord{
		BondCode:   null.StringFrom(code),
		Issuer:     null.StringFrom(testIssuer),
		Date:       date,
		Maturity:   null.FloatFrom(maturity),
		Yield:      null.FloatFrom(yield),
		TradeCount: null.FloatFrom(trades),
	}
}

// tradesOver repeats a bond for every day in [from, to] of march 2024
func tradesOver(code string, from, to int, maturity, yield, trades float64) []*dm.TradeRecord {
	var res []*dm.TradeRecord
	for d := from; d <= to; d++ {
		res = append(res, trade(code, march(d), maturity, yield, trades))
	}
	return res
}

func criteriaFor(start, end time.Time, minMaturity, maxMaturity float64) dm.SelectionCriteria {
	return dm.SelectionCriteria{
		Issuer:      testIssuer,
		StartDate:   start,
		EndDate:     end,
		MinMaturity: minMaturity,
		MaxMaturity: maxMaturity,
	}
}

// fakeTrades serves a fixed snapshot, filtered the way a real source would be
type fakeTrades struct {
	records []*dm.TradeRecord
	err     error
	calls   int
}

func (f *fakeTrades) GetTradeRecords(_ context.Context, issuer string, start, end time.Time) ([]*dm.TradeRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return ex.FilterMultiplePtr(f.records, func(tr *dm.TradeRecord) bool {
		return tr.Issuer.String == issuer && ex.InDateRange(tr.Date, start, end)
	}), nil
}

type fakeReferenceYields struct {
	yields []*dm.ReferenceYield
	err    error
}

func (f *fakeReferenceYields) GetReferenceYields(_ context.Context, _, _ time.Time) ([]*dm.ReferenceYield, error) {
	return f.yields, f.err
}

type fakeRunStore struct {
	inserted  []dm.AnalysisRun
	succeeded map[int32]int
	failed    map[int32]string
}

func newFakeRunStore() *fakeRunStore {
	return &fakeRunStore{succeeded: map[int32]int{}, failed: map[int32]string{}}
}

func (f *fakeRunStore) InsertAnalysisRun(_ context.Context, run *dm.AnalysisRun) error {
	run.Id = int32(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *run)
	return nil
}

func (f *fakeRunStore) UpdateAnalysisRunAsSuccess(_ context.Context, id int32, bondCount int) error {
	f.succeeded[id] = bondCount
	return nil
}

func (f *fakeRunStore) UpdateAnalysisRunAsFailure(_ context.Context, id int32, errorMessage string) error {
	if errorMessage == "" {
		return errors.New("blank error message")
	}
	f.failed[id] = errorMessage
	return nil
}
