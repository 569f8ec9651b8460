package models

import (
	"github.com/guregu/null/v6"

	dm "bondspread/data/models"
)

// SpreadSummary is the distribution of a spread series in basis points
type SpreadSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	P10   float64 `json:"p10"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	P90   float64 `json:"p90"`
}

// Relationship between the trade count ratio (x) and the spread (y).
// Values are null when undefined, e.g. a constant ratio series.
type Relationship struct {
	Observations int        `json:"observations"`
	PearsonR     null.Float `json:"pearsonR"`
	PearsonP     null.Float `json:"pearsonP"`
	Slope        null.Float `json:"slope"`
	Intercept    null.Float `json:"intercept"`
	RSquared     null.Float `json:"rSquared"`
	SlopeP       null.Float `json:"slopeP"`
}

// PairAnalysis compares two ranked bonds. Label uses rank positions, so
// "1-3" is the most active bond against the third most active.
type PairAnalysis struct {
	Label        string         `json:"label"`
	BondA        string         `json:"bondA"`
	BondB        string         `json:"bondB"`
	Spread       dm.DatedSeries `json:"spread"`
	TradeRatio   dm.DatedSeries `json:"tradeRatio"`
	Summary      *SpreadSummary `json:"summary,omitempty"`
	Relationship *Relationship  `json:"relationship,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
}

type BondLiquidity struct {
	BondCode       string         `json:"bondCode"`
	Rank           int            `json:"rank"`
	LendingBalance dm.DatedSeries `json:"lendingBalance"` // hundred millions
	TradeCount     dm.DatedSeries `json:"tradeCount"`
}

type LiquidityPanel struct {
	Bonds               []BondLiquidity `json:"bonds"`
	TotalLendingBalance dm.DatedSeries  `json:"totalLendingBalance"` // hundred millions
}

type SpreadAnalysis struct {
	Bonds    []string        `json:"bonds"`
	Pairs    []*PairAnalysis `json:"pairs"`
	Warnings []string        `json:"warnings"`
}

type AnalysisReport struct {
	RunId          int32               `json:"runId,omitempty"`
	Selection      *dm.SelectionResult `json:"selection"`
	TradingDays    []string            `json:"tradingDays,omitempty"`
	Spreads        *SpreadAnalysis     `json:"spreads,omitempty"`
	Liquidity      *LiquidityPanel     `json:"liquidity,omitempty"`
	ReferenceYield dm.DatedSeries      `json:"referenceYield,omitempty"`
	Warnings       []string            `json:"warnings"`
}
