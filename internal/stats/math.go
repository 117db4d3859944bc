package stats

import (
	"math"
	"slices"
	"sort"
)

// Median finds the median value in a slice of floats.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Work on a copy to avoid mutating the original
	temp := make([]float64, len(values))
	copy(temp, values)
	slices.Sort(temp)

	n := len(temp)
	if n%2 == 1 {
		return temp[n/2]
	}
	return (temp[n/2-1] + temp[n/2]) / 2.0
}

// Entropy computes the Shannon entropy (natural log) of a count
// distribution. Zero counts contribute nothing; an empty or all-zero
// distribution has zero entropy.
func Entropy(counts []float64) float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := c / total
		h -= p * math.Log(p)
	}
	return h
}

// ParetoShare returns the fraction of items (sorted by weight, descending)
// needed to account for the given ratio of the total weight. With
// ratio=0.8 this is the classic "what share of contacts carry 80% of the
// interactions" measure.
func ParetoShare(weights []float64, ratio float64) float64 {
	if len(weights) == 0 {
		return 0
	}

	temp := make([]float64, len(weights))
	copy(temp, weights)
	sort.Sort(sort.Reverse(sort.Float64Slice(temp)))

	total := 0.0
	for _, w := range temp {
		total += w
	}
	if total == 0 {
		return 0
	}

	target := ratio * total
	cumulative := 0.0
	for i, w := range temp {
		cumulative += w
		if cumulative >= target {
			return float64(i+1) / float64(len(temp))
		}
	}
	return 1.0
}

const earthRadiusKm = 6371.0

// GreatCircleDistance computes the haversine distance in kilometers
// between two lat/lon points given in degrees.
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
