package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// AnalysisRun is the persisted history of a selection/analysis request.
// ErrorMessage is null while the run is in progress or when it succeeded.
type AnalysisRun struct {
	Id           int32       `db:"id"`
	Issuer       string      `db:"issuer"`
	StartDate    time.Time   `db:"start_date"`
	EndDate      time.Time   `db:"end_date"`
	MinMaturity  float64     `db:"min_maturity"`
	MaxMaturity  float64     `db:"max_maturity"`
	FromStart    bool        `db:"from_start"`
	BondCount    int32       `db:"bond_count"`
	ErrorMessage null.String `db:"error_message"`
	CreatedAt    time.Time   `db:"created_at"`
	CompletedAt  null.Time   `db:"completed_at"`
}

func NewAnalysisRun(criteria SelectionCriteria, fromStart bool) AnalysisRun {
	return AnalysisRun{
		Issuer:      criteria.Issuer,
		StartDate:   criteria.StartDate,
		EndDate:     criteria.EndDate,
		MinMaturity: criteria.MinMaturity,
		MaxMaturity: criteria.MaxMaturity,
		FromStart:   fromStart,
	}
}
