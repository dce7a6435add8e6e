package domain

import (
	"math"
	"time"
)

// ProjectionOutcome classifies the result of a trend projection. Infeasible
// outcomes are first-class results, not errors.
type ProjectionOutcome string

const (
	OutcomeProjected        ProjectionOutcome = "projected"
	OutcomeInsufficientData ProjectionOutcome = "insufficient-data"
	OutcomeWrongDirection   ProjectionOutcome = "wrong-direction"
	OutcomeNoGoal           ProjectionOutcome = "no-goal"
)

// Projection is the estimated future date at which the fitted trend line
// crosses the goal weight. Earliest/Latest bound a 1-sigma confidence window
// around Date; on perfectly linear data all three coincide. Derived per
// request, never persisted.
type Projection struct {
	Method      string            `json:"method"`
	Outcome     ProjectionOutcome `json:"outcome"`
	SlopePerDay float64           `json:"slopePerDay"` // kg/day, negative when losing
	RatePerWeek float64           `json:"ratePerWeek"` // kg/week
	Date        time.Time         `json:"date,omitempty"`
	Earliest    time.Time         `json:"earliest,omitempty"`
	Latest      time.Time         `json:"latest,omitempty"`
}

// Feasible reports whether the projection produced a crossing date.
func (p Projection) Feasible() bool {
	return p.Outcome == OutcomeProjected
}

const olsMethod = "ols-linear"

// Project fits an ordinary least-squares line through the trailing window of
// observations (weight against elapsed days) and solves for the day the line
// crosses target. Stateless: a pure function of (window, target).
//
// Policy, in order:
//   - fewer than 2 distinct-date observations -> insufficient-data
//   - slope does not move weight toward the target -> wrong-direction
//   - otherwise the crossing day, rounded to the nearest whole day past the
//     window's latest date; a crossing already behind the window clamps to
//     that date.
func Project(window []Observation, target float64) Projection {
	p := Projection{Method: olsMethod}
	if len(window) < 2 {
		p.Outcome = OutcomeInsufficientData
		return p
	}

	first := window[0].Date
	xs := make([]float64, len(window))
	ys := make([]float64, len(window))
	for i, o := range window {
		xs[i] = o.Date.Sub(first).Hours() / 24
		ys[i] = o.Weight
	}

	slope, intercept := leastSquares(xs, ys)
	p.SlopePerDay = slope
	p.RatePerWeek = slope * 7

	last := window[len(window)-1]
	current := last.Weight

	if math.Abs(target-current) < 1e-9 {
		// Already at the goal.
		p.Outcome = OutcomeProjected
		p.Date, p.Earliest, p.Latest = last.Date, last.Date, last.Date
		return p
	}
	if slope == 0 || (target < current && slope > 0) || (target > current && slope < 0) {
		p.Outcome = OutcomeWrongDirection
		return p
	}

	xLast := xs[len(xs)-1]
	days := (target-intercept)/slope - xLast
	if days < 0 {
		days = 0
	}

	sigma := sigmaDays(xs, ys, slope, intercept)
	p.Outcome = OutcomeProjected
	p.Date = last.Date.AddDate(0, 0, int(math.Round(days)))
	p.Earliest = last.Date.AddDate(0, 0, int(math.Round(days-sigma)))
	p.Latest = last.Date.AddDate(0, 0, int(math.Round(days+sigma)))
	return p
}

// leastSquares fits y = slope*x + intercept. A degenerate x spread returns a
// flat line through the mean.
func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}
	denom := n*sumX2 - sumX*sumX
	if math.Abs(denom) < 1e-10 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// sigmaDays converts the regression's residual standard deviation into days:
// how far the crossing shifts if the data drifts one residual sigma. Zero
// residual variance collapses the window to a single date.
func sigmaDays(xs, ys []float64, slope, intercept float64) float64 {
	n := len(xs)
	if n <= 2 {
		return 0
	}
	var sse float64
	for i := range xs {
		r := ys[i] - (slope*xs[i] + intercept)
		sse += r * r
	}
	s := math.Sqrt(sse / float64(n-2))
	if s < 1e-12 {
		return 0
	}
	return s / math.Abs(slope)
}
