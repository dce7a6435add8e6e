package domain

// WHO-style BMI category thresholds. Boundaries are closed on the lower
// bound and open on the upper, so 25.0 is overweight and 24.9 is normal.
const (
	bmiUnderweightUpper = 18.5
	bmiNormalUpper      = 25.0
	bmiOverweightUpper  = 30.0
)

// BMICategory is the WHO classification of a BMI value.
type BMICategory string

const (
	Underweight BMICategory = "underweight"
	Normal      BMICategory = "normal"
	Overweight  BMICategory = "overweight"
	Obese       BMICategory = "obese"
)

// BMI computes body mass index from weight in kilograms and height in
// meters. Returns ErrMissingHeight when height is unset or non-positive.
func BMI(weightKg, heightM float64) (float64, error) {
	if heightM <= 0 {
		return 0, ErrMissingHeight
	}
	return weightKg / (heightM * heightM), nil
}

// ClassifyBMI maps a BMI value to its WHO category.
func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < bmiUnderweightUpper:
		return Underweight
	case bmi < bmiNormalUpper:
		return Normal
	case bmi < bmiOverweightUpper:
		return Overweight
	default:
		return Obese
	}
}

// WeightDelta is the signed change between two observations.
type WeightDelta struct {
	Kilograms float64 `json:"kilograms"`
	Percent   float64 `json:"percent"`
}

// Delta returns the signed weight difference b-a and the percentage change
// relative to a. Returns ErrInsufficientData when either observation is
// absent.
func Delta(a, b *Observation) (WeightDelta, error) {
	if a == nil || b == nil {
		return WeightDelta{}, ErrInsufficientData
	}
	diff := b.Weight - a.Weight
	return WeightDelta{
		Kilograms: diff,
		Percent:   diff / a.Weight * 100,
	}, nil
}

// MovingAverage returns the rolling mean of values over the given window.
// Leading positions average over the points seen so far, so the result has
// the same length as the input. A window <= 1 returns a copy of the input.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(n)
	}
	return out
}
