package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSelectionRequestToCriteria(t *testing.T) {
	lo, hi := 28.0, 30.0
	req := SelectionRequest{
		Issuer:      "财政部",
		StartDate:   "2024-03-04",
		EndDate:     "2024-03-15",
		MinMaturity: &lo,
		MaxMaturity: &hi,
	}

	c, err := MapSelectionRequestToCriteria(req)
	require.NoError(t, err)
	assert.Equal(t, "财政部", c.Issuer)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), c.StartDate)
	assert.Equal(t, 30.0, c.MaxMaturity)
	assert.Equal(t, 0, c.TopN, "left for defaults")

	req.EndDate = "15.03.2024"
	_, err = MapSelectionRequestToCriteria(req)
	assert.Error(t, err)
}

func TestMapPeriodsRequest_SeasonsBeforePeriods(t *testing.T) {
	req := PeriodsRequest{
		Seasons: []string{"2024Q2"},
		Periods: []PeriodPayload{{Name: "spring", StartDate: "2024-03-01", EndDate: "2024-05-31"}},
	}

	res, err := MapPeriodsRequest(req)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "2024Q2", res[0].Name)
	assert.Equal(t, "spring", res[1].Name)
	assert.Equal(t, time.May, res[1].End.Month())

	req.Seasons = []string{"2024Q9"}
	_, err = MapPeriodsRequest(req)
	assert.Error(t, err)
}
