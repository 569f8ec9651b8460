package calendar

import (
	"time"

	ex "bondspread/data/extensions"
)

type Calendar interface {
	IsTradingDay(t time.Time) bool
	TradingDays(start, end time.Time) []time.Time
}

// WeekdayCalendar treats monday to friday as trading days, minus holidays
type WeekdayCalendar struct {
	holidays map[time.Time]struct{}
}

func NewWeekdayCalendar(holidays []time.Time) *WeekdayCalendar {
	days := make([]time.Time, len(holidays))
	for i, h := range holidays {
		days[i] = ex.DateOnly(h)
	}
	return &WeekdayCalendar{holidays: ex.ToSet(days)}
}

func (c *WeekdayCalendar) IsTradingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !ex.Contains(c.holidays, ex.DateOnly(t))
}

// TradingDays lists trading days in [start, end], both inclusive
func (c *WeekdayCalendar) TradingDays(start, end time.Time) []time.Time {
	var res []time.Time
	for d := ex.DateOnly(start); !d.After(ex.DateOnly(end)); d = d.AddDate(0, 0, 1) {
		if c.IsTradingDay(d) {
			res = append(res, d)
		}
	}
	return res
}

// DateIndex maps a date to its position in a list of trading days, which is
// what a chart uses as the x coordinate.
type DateIndex map[string]int

func NewDateIndex(days []time.Time) DateIndex {
	res := make(DateIndex, len(days))
	for i, d := range days {
		res[ex.FmtShort(d)] = i
	}
	return res
}

func (di DateIndex) Lookup(t time.Time) (int, bool) {
	i, ok := di[ex.FmtShort(t)]
	return i, ok
}

// Labels returns the dates in index order
func (di DateIndex) Labels() []string {
	res := make([]string, len(di))
	for label, i := range di {
		res[i] = label
	}
	return res
}
