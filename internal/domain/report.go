package domain

import (
	"time"

	"github.com/google/uuid"
)

// BMIReading is the current BMI with its WHO category.
type BMIReading struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"category"`
}

// Report is an immutable snapshot combining the latest observation, derived
// metrics, period summaries and trend projection. It is fully
// self-describing: all slices are copies with no live references back into
// the store, so it can be handed to an external renderer and discarded.
//
// Sub-failures are embedded rather than fatal: BMI is nil when no height is
// known, Goal is nil when none is set, and the Projection carries an
// infeasible outcome instead of an error.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	GeneratedAt time.Time       `json:"generatedAt"`
	First       Observation     `json:"first"`
	Latest      Observation     `json:"latest"`
	TotalChange WeightDelta     `json:"totalChange"`
	BMI         *BMIReading     `json:"bmi,omitempty"`
	Goal        *Goal           `json:"goal,omitempty"`
	Weekly      []PeriodSummary `json:"weekly"`
	Monthly     []PeriodSummary `json:"monthly"`
	Projection  Projection      `json:"projection"`
	Window      []Observation   `json:"window"`
	Smoothed    []float64       `json:"smoothed"` // moving average over Window weights
}
