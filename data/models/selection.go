package models

import "time"

const DefaultTopN = 5

// SelectionCriteria describes which records the bond selector keeps. Both
// ranges are inclusive.
type SelectionCriteria struct {
	Issuer      string    `json:"issuer" validate:"required"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	MinMaturity float64   `json:"minMaturity"`
	MaxMaturity float64   `json:"maxMaturity" validate:"gtefield=MinMaturity"`
	TopN        int       `json:"topN" default:"5" validate:"gte=1"`
}

type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BondActivity is the mean daily trade count of a bond over the selection window
type BondActivity struct {
	BondCode       string  `json:"bondCode"`
	MeanTradeCount float64 `json:"meanTradeCount"`
	Observations   int     `json:"observations"`
}

type SelectionResult struct {
	Criteria      SelectionCriteria `json:"criteria"`
	DistinctBonds int               `json:"distinctBonds"`
	Ranking       []BondActivity    `json:"ranking"` // every matching bond, most active first
	Top           []BondActivity    `json:"top"`

	// only set when restricted to bonds already trading in the week of the start date
	AnchorWeek  *DateWindow `json:"anchorWeek,omitempty"`
	AnchorBonds int         `json:"anchorBonds,omitempty"`
}

func (sr *SelectionResult) IsEmpty() bool {
	return sr == nil || len(sr.Top) == 0
}

// BondCodes returns the top ranked bond codes in rank order
func (sr *SelectionResult) BondCodes() []string {
	if sr == nil {
		return nil
	}
	res := make([]string, len(sr.Top))
	for i, b := range sr.Top {
		res[i] = b.BondCode
	}
	return res
}
