package core

import (
	"slices"
	"time"

	dm "bondspread/data/models"
	sm "bondspread/service/models"
)

// lending balances arrive in millions and are reported in hundred millions
const lendingBalanceScale = 100

// BuildLiquidityPanel lays out the lending balance and trade count of each
// bond in rank order, plus the lending balance summed across bonds per date.
// A date is only in the total when at least one bond has a balance for it.
func BuildLiquidityPanel(series map[string]*BondSeries, bondCodes []string) *sm.LiquidityPanel {
	res := &sm.LiquidityPanel{
		Bonds:               make([]sm.BondLiquidity, 0, len(bondCodes)),
		TotalLendingBalance: dm.DatedSeries{},
	}

	total := make(map[time.Time]float64)
	for i, code := range bondCodes {
		bl := sm.BondLiquidity{
			BondCode:       code,
			Rank:           i + 1,
			LendingBalance: dm.DatedSeries{},
			TradeCount:     dm.DatedSeries{},
		}

		if bs := series[code]; bs != nil {
			bl.LendingBalance = toSortedSeries(bs.LendingBalance, lendingBalanceScale)
			bl.TradeCount = toSortedSeries(bs.TradeCounts, 1)
			for day, v := range bs.LendingBalance {
				total[day] += v
			}
		}

		res.Bonds = append(res.Bonds, bl)
	}

	res.TotalLendingBalance = toSortedSeries(total, lendingBalanceScale)
	return res
}

func toSortedSeries(values map[time.Time]float64, divisor float64) dm.DatedSeries {
	res := make(dm.DatedSeries, 0, len(values))
	for day, v := range values {
		res = append(res, dm.DatedValue{Date: day, Value: v / divisor})
	}
	slices.SortFunc(res, func(a, b dm.DatedValue) int {
		return a.Date.Compare(b.Date)
	})
	return res
}
