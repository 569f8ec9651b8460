package core

import (
	"fmt"
	"slices"
	"time"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
	sm "bondspread/service/models"
)

// BondSeries holds the yield and trade count observations of one bond keyed
// by calendar day. Missing values are left out, so a date can be present in
// one map and not the other.
type BondSeries struct {
	BondCode       string
	Yields         map[time.Time]float64
	TradeCounts    map[time.Time]float64
	LendingBalance map[time.Time]float64
}

func newBondSeries(code string) *BondSeries {
	return &BondSeries{
		BondCode:       code,
		Yields:         make(map[time.Time]float64),
		TradeCounts:    make(map[time.Time]float64),
		LendingBalance: make(map[time.Time]float64),
	}
}

// BuildBondSeries collects the series of the requested bonds. A later row
// for the same bond and date replaces an earlier one.
func BuildBondSeries(records []*dm.TradeRecord, bondCodes []string) map[string]*BondSeries {
	res := make(map[string]*BondSeries, len(bondCodes))
	for _, code := range bondCodes {
		res[code] = newBondSeries(code)
	}

	for _, tr := range records {
		if tr == nil {
			continue
		}
		bs, ok := res[tr.BondCode.String]
		if !ok || !tr.BondCode.Valid {
			continue
		}

		day := ex.DateOnly(tr.Date)
		if tr.Yield.Valid && ex.IsFinite(tr.Yield.Float64) {
			bs.Yields[day] = tr.Yield.Float64
		}
		if tr.TradeCount.Valid && ex.IsFinite(tr.TradeCount.Float64) {
			bs.TradeCounts[day] = tr.TradeCount.Float64
		}
		if tr.LendingBalance.Valid && ex.IsFinite(tr.LendingBalance.Float64) {
			bs.LendingBalance[day] = tr.LendingBalance.Float64
		}
	}

	return res
}

type bondPair struct {
	label string
	a, b  int
}

// pairsFor compares the most active bond with every other one, and the second
// with the third when there are at least three
func pairsFor(n int) []bondPair {
	res := make([]bondPair, 0, n)
	for i := 1; i < n; i++ {
		res = append(res, bondPair{label: fmt.Sprintf("1-%d", i+1), a: 0, b: i})
	}
	if n >= 3 {
		res = append(res, bondPair{label: "2-3", a: 1, b: 2})
	}
	return res
}

// AnalyzeSpreads computes the spread and trade count ratio of each bond pair
// and their statistics. bondCodes must be in rank order.
func AnalyzeSpreads(series map[string]*BondSeries, bondCodes []string) (*sm.SpreadAnalysis, error) {
	if len(bondCodes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientBonds, len(bondCodes))
	}

	res := &sm.SpreadAnalysis{
		Bonds:    slices.Clone(bondCodes),
		Pairs:    make([]*sm.PairAnalysis, 0, len(bondCodes)),
		Warnings: []string{},
	}

	for _, p := range pairsFor(len(bondCodes)) {
		a, b := series[bondCodes[p.a]], series[bondCodes[p.b]]
		if a == nil {
			a = newBondSeries(bondCodes[p.a])
		}
		if b == nil {
			b = newBondSeries(bondCodes[p.b])
		}

		pa := analyzePair(p.label, a, b)
		res.Pairs = append(res.Pairs, pa)
		res.Warnings = append(res.Warnings, pa.Warnings...)
	}

	return res, nil
}

func analyzePair(label string, a, b *BondSeries) *sm.PairAnalysis {
	res := &sm.PairAnalysis{
		Label: label,
		BondA: a.BondCode,
		BondB: b.BondCode,
	}

	res.Spread = alignSeries(a.Yields, b.Yields, func(ya, yb float64) float64 {
		return (ya - yb) * 100
	})
	res.TradeRatio = alignSeries(a.TradeCounts, b.TradeCounts, func(ta, tb float64) float64 {
		return ta / tb
	})

	if len(res.Spread) < MinAlignedObservations {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pair %s (%s/%s): %d aligned spread observations, summary skipped",
			label, a.BondCode, b.BondCode, len(res.Spread)))
	} else {
		res.Summary = SummarizeSpread(res.Spread.Values())
	}

	ratio, spread := joinSeries(res.TradeRatio, res.Spread)
	if len(ratio) < MinAlignedObservations {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pair %s (%s/%s): %d aligned ratio observations, regression skipped",
			label, a.BondCode, b.BondCode, len(ratio)))
	} else {
		res.Relationship = ComputeRelationship(ratio, spread)
	}

	return res
}

// alignSeries combines two series on their common dates. Non finite results
// are dropped.
func alignSeries(a, b map[time.Time]float64, combine func(float64, float64) float64) dm.DatedSeries {
	res := make(dm.DatedSeries, 0, ex.Min(len(a), len(b)))
	for day, va := range a {
		vb, ok := b[day]
		if !ok {
			continue
		}
		if v := combine(va, vb); ex.IsFinite(v) {
			res = append(res, dm.DatedValue{Date: day, Value: v})
		}
	}

	slices.SortFunc(res, func(x, y dm.DatedValue) int {
		return x.Date.Compare(y.Date)
	})
	return res
}

// joinSeries returns the values of x and y on the dates both have, ordered by date
func joinSeries(x, y dm.DatedSeries) ([]float64, []float64) {
	byDate := make(map[time.Time]float64, len(y))
	for _, v := range y {
		byDate[v.Date] = v.Value
	}

	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(x))
	for _, v := range x {
		if yv, ok := byDate[v.Date]; ok {
			xs = append(xs, v.Value)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}
