package models

import "time"

type DatedValue struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DatedSeries is ordered by date ascending
type DatedSeries []DatedValue

func (ds DatedSeries) Values() []float64 {
	res := make([]float64, len(ds))
	for i, v := range ds {
		res[i] = v.Value
	}
	return res
}

func (ds DatedSeries) Dates() []time.Time {
	res := make([]time.Time, len(ds))
	for i, v := range ds {
		res[i] = v.Date
	}
	return res
}
