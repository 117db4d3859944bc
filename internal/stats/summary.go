package stats

import "math"

// Summary holds the statistical reduction of a sample of per-bucket
// indicator values. The extended moments are only populated when the
// caller requests them.
//
// Conventions: Std is the POPULATION standard deviation, so a
// single-value sample yields Std = 0, deliberately distinguishable from
// a nil Summary (no data at all). Kurtosis is EXCESS kurtosis: a normal
// distribution scores 0, heavy tails positive, light tails negative.
type Summary struct {
	Mean     float64  `json:"mean"`
	Std      float64  `json:"std"`
	Median   *float64 `json:"median,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Skewness *float64 `json:"skewness,omitempty"`
	Kurtosis *float64 `json:"kurtosis,omitempty"`
	N        int      `json:"n"`
}

// Describe reduces a sample to summary statistics. An empty sample
// returns nil so that "no activity" is never reported as zeroed
// statistics. With extended=true the median, min, max and the
// standardized third and fourth moments are added.
func Describe(values []float64, extended bool) *Summary {
	if len(values) == 0 {
		return nil
	}

	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n

	s := &Summary{
		Mean: mean,
		Std:  math.Sqrt(m2),
		N:    len(values),
	}

	if !extended {
		return s
	}

	med := Median(values)
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// Standardized moments collapse to 0 for a spreadless sample.
	skew, kurt := 0.0, 0.0
	if s.Std > 0 {
		skew = m3 / math.Pow(s.Std, 3)
		kurt = m4/math.Pow(s.Std, 4) - 3
	}

	s.Median = &med
	s.Min = &min
	s.Max = &max
	s.Skewness = &skew
	s.Kurtosis = &kurt
	return s
}
