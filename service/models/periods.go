package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ex "bondspread/data/extensions"
	dm "bondspread/data/models"
)

type Period struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParsePeriod turns "2024" into the calendar year and "2024Q3" into that quarter
func ParsePeriod(season string) (Period, error) {
	season = strings.ToUpper(strings.TrimSpace(season))
	yearPart, quarterPart, isQuarter := strings.Cut(season, "Q")

	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("invalid period %q, expected YYYY or YYYYQn", season)
	}

	if !isQuarter {
		return Period{
			Name:  season,
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	}

	quarter, err := strconv.Atoi(quarterPart)
	if err != nil || quarter < 1 || quarter > 4 {
		return Period{}, fmt.Errorf("invalid quarter in period %q", season)
	}

	firstMonth := time.Month(3*quarter - 2)
	start := time.Date(year, firstMonth, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Name:  season,
		Start: start,
		End:   start.AddDate(0, 3, -1),
	}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%s (%s to %s)", p.Name, ex.FmtShort(p.Start), ex.FmtShort(p.End))
}

type PairSummary struct {
	Label    string         `json:"label"`
	BondA    string         `json:"bondA"`
	BondB    string         `json:"bondB"`
	Summary  *SpreadSummary `json:"summary,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

type PeriodSummary struct {
	Period  Period            `json:"period"`
	Bonds   []dm.BondActivity `json:"bonds"`
	Spreads []PairSummary     `json:"spreads"`
	Warning string            `json:"warning,omitempty"`
}
