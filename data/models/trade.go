package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// TradeRecord is one (bond, date) observation from the trade export.
// Columns that can be blank in the export are nullable so a missing value is
// never confused with zero.
type TradeRecord struct {
	BondCode       null.String `db:"bond_code"`
	Issuer         null.String `db:"issuer"`
	Date           time.Time   `db:"trade_date"`
	Maturity       null.Float  `db:"remaining_maturity"` // years
	Yield          null.Float  `db:"yield_to_maturity"`  // percent
	TradeCount     null.Float  `db:"trade_count"`
	LendingBalance null.Float  `db:"lending_balance"` // millions
}

// IsComplete reports whether the columns the selector relies on are present
func (tr *TradeRecord) IsComplete() bool {
	return tr.BondCode.Valid && tr.Issuer.Valid && tr.Maturity.Valid && tr.TradeCount.Valid
}

// ReferenceYield is a benchmark curve point (e.g. a 30Y valuation yield) keyed by date
type ReferenceYield struct {
	Date  time.Time `db:"value_date" json:"date"`
	Yield float64   `db:"yield" json:"yield"`
}
