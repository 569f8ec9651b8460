package core

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
)

// CleanTradeRecords drops rows missing a bond code, issuer, maturity or
// trade count
func CleanTradeRecords(records []*dm.TradeRecord) []*dm.TradeRecord {
	return ex.FilterMultiplePtr(records, (*dm.TradeRecord).IsComplete)
}

// SelectBonds ranks the bonds of an issuer by mean daily trade count over the
// window. Expects records that are not yet cleaned. An empty result is not an
// error.
func SelectBonds(records []*dm.TradeRecord, criteria dm.SelectionCriteria) (*dm.SelectionResult, error) {
	if err := prepareCriteria(&criteria); err != nil {
		return nil, err
	}

	return selectBonds(CleanTradeRecords(records), criteria, nil), nil
}

// SelectBondsFromStart is SelectBonds restricted to bonds that already traded
// in the monday to sunday week containing the start date, which leaves out
// bonds issued part way through the window.
func SelectBondsFromStart(records []*dm.TradeRecord, criteria dm.SelectionCriteria) (*dm.SelectionResult, error) {
	if err := prepareCriteria(&criteria); err != nil {
		return nil, err
	}

	clean := CleanTradeRecords(records)
	weekStart, weekEnd := ex.WeekBounds(criteria.StartDate)

	inAnchorWeek := func(tr *dm.TradeRecord) bool {
		return tr.Issuer.String == criteria.Issuer && ex.InDateRange(tr.Date, weekStart, weekEnd)
	}
	anchorBonds, _ := ex.GroupByOrdered(ex.FilterMultiplePtr(clean, inAnchorWeek), bondCode)

	var res *dm.SelectionResult
	if len(anchorBonds) == 0 {
		res = emptySelection(criteria)
	} else {
		res = selectBonds(clean, criteria, ex.ToSet(anchorBonds))
	}

	res.AnchorWeek = &dm.DateWindow{Start: weekStart, End: weekEnd}
	res.AnchorBonds = len(anchorBonds)
	return res, nil
}

// selectBonds expects cleaned records and prepared criteria. A nil
// candidates set means every bond is a candidate.
func selectBonds(records []*dm.TradeRecord, criteria dm.SelectionCriteria, candidates map[string]struct{}) *dm.SelectionResult {
	matches := func(tr *dm.TradeRecord) bool {
		return ex.InDateRange(tr.Date, criteria.StartDate, criteria.EndDate) &&
			tr.Issuer.String == criteria.Issuer &&
			ex.InRange(tr.Maturity.Float64, criteria.MinMaturity, criteria.MaxMaturity) &&
			(candidates == nil || ex.Contains(candidates, tr.BondCode.String))
	}

	filtered := ex.FilterMultiplePtr(records, matches)
	if len(filtered) == 0 {
		return emptySelection(criteria)
	}

	ranking := rankBonds(filtered)
	return &dm.SelectionResult{
		Criteria:      criteria,
		DistinctBonds: len(ranking),
		Ranking:       ranking,
		Top:           ranking[:ex.Min(criteria.TopN, len(ranking))],
	}
}

// rankBonds orders bonds by mean trade count, most active first. The sort is
// stable on first appearance, so equal means keep the input order.
func rankBonds(records []*dm.TradeRecord) []dm.BondActivity {
	codes, groups := ex.GroupByOrdered(records, bondCode)

	res := make([]dm.BondActivity, len(codes))
	for i, code := range codes {
		counts := make([]float64, len(groups[code]))
		for j, tr := range groups[code] {
			counts[j] = tr.TradeCount.Float64
		}
		res[i] = dm.BondActivity{
			BondCode:       code,
			MeanTradeCount: stat.Mean(counts, nil),
			Observations:   len(counts),
		}
	}

	slices.SortStableFunc(res, func(a, b dm.BondActivity) int {
		return cmp.Compare(b.MeanTradeCount, a.MeanTradeCount)
	})

	return res
}

func emptySelection(criteria dm.SelectionCriteria) *dm.SelectionResult {
	return &dm.SelectionResult{
		Criteria: criteria,
		Ranking:  []dm.BondActivity{},
		Top:      []dm.BondActivity{},
	}
}

func bondCode(tr *dm.TradeRecord) string {
	return tr.BondCode.String
}
