package core

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	ex "bondspread/data/extensions"
	sm "bondspread/service/models"
)

// MinAlignedObservations is the fewest points a pair needs before any
// statistic is computed for it
const MinAlignedObservations = 3

var summaryPercentiles = []float64{0.10, 0.25, 0.50, 0.75, 0.90}

// Percentile interpolates linearly between the closest ranks of an ascending
// slice (Hyndman and Fan type 7). stat.Quantile with stat.LinInterp is type 4
// and disagrees on short series.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	if lower >= n-1 {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// SummarizeSpread returns nil when there are fewer than MinAlignedObservations values
func SummarizeSpread(values []float64) *sm.SpreadSummary {
	if len(values) < MinAlignedObservations {
		return nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p := make([]float64, len(summaryPercentiles))
	for i, q := range summaryPercentiles {
		p[i] = Percentile(sorted, q)
	}

	return &sm.SpreadSummary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P10:   p[0],
		P25:   p[1],
		P50:   p[2],
		P75:   p[3],
		P90:   p[4],
	}
}

// ComputeRelationship correlates x with y and fits y = intercept + slope*x by
// ordinary least squares. p-values are two sided, from a t distribution with
// n-2 degrees of freedom. Returns nil when there are fewer than
// MinAlignedObservations points.
func ComputeRelationship(x, y []float64) *sm.Relationship {
	n := len(x)
	if n != len(y) || n < MinAlignedObservations {
		return nil
	}

	df := float64(n - 2)
	r := stat.Correlation(x, y, nil)
	if !math.IsNaN(r) {
		r = math.Max(-1, math.Min(1, r))
	}
	pearsonT := r * math.Sqrt(df/(1-r*r))

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	rSquared := stat.RSquared(x, y, nil, intercept, slope)

	meanX := stat.Mean(x, nil)
	var sxx, sse float64
	for i := range n {
		dx := x[i] - meanX
		sxx += dx * dx
		residual := y[i] - (intercept + slope*x[i])
		sse += residual * residual
	}
	slopeT := slope / math.Sqrt(sse/df/sxx)

	return &sm.Relationship{
		Observations: n,
		PearsonR:     ex.NullableFloat(r),
		PearsonP:     ex.NullableFloat(twoSidedPValue(pearsonT, df)),
		Slope:        ex.NullableFloat(slope),
		Intercept:    ex.NullableFloat(intercept),
		RSquared:     ex.NullableFloat(rSquared),
		SlopeP:       ex.NullableFloat(twoSidedPValue(slopeT, df)),
	}
}

func twoSidedPValue(t, df float64) float64 {
	if math.IsNaN(t) {
		return math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t))
}
