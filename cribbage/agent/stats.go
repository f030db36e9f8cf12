package agent

import (
	"math"
	"slices"

	"cribbage-lite/card"
)

// CandidateStats summarizes the trials of one discard pair. Valid is false
// when no trial completed; the other fields are then meaningless.
type CandidateStats struct {
	First  card.Card
	Second card.Card
	Trials int
	Mean   float64
	P5     float64
	P95    float64
	Valid  bool
}

func summarize(obs []float64) CandidateStats {
	if len(obs) == 0 {
		return CandidateStats{}
	}
	sorted := slices.Clone(obs)
	slices.Sort(sorted)
	return CandidateStats{
		Trials: len(obs),
		Mean:   mean(obs),
		P5:     percentile(sorted, 5),
		P95:    percentile(sorted, 95),
		Valid:  true,
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// percentile interpolates linearly between the closest ranks of a sorted
// sample.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
