package sim

import (
	"math"
	"slices"
)

// Stats summarizes one measured quantity across trials.
type Stats struct {
	Mean   float64
	Var    float64 // population variance
	StdDev float64
	P50    float64
	P90    float64
	P99    float64

	Samples []float64 `json:"-"` // in trial order
}

type integer interface {
	~int | ~int64
}

func calcStats[T integer](xs []T) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	samples := make([]float64, n)
	var sum float64
	for i, v := range xs {
		samples[i] = float64(v)
		sum += samples[i]
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range samples {
		acc += (v - mean) * (v - mean)
	}
	variance := acc / float64(n)

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(sorted, 0.50),
		P90:     percentile(sorted, 0.90),
		P99:     percentile(sorted, 0.99),
		Samples: samples,
	}
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 1 || p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	i := int(pos)
	if i+1 >= n {
		return sorted[i]
	}
	f := pos - float64(i)
	return sorted[i]*(1-f) + sorted[i+1]*f
}
