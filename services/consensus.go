package services

import "github.com/montanaflynn/stats"

// Consensus combines rating dispersion and sentiment-category agreement into
// a 0-100 score: 70% from max(0, 100 - popStddev(ratings)*25) and 30% from
// the share of the most frequent sentiment category. Population standard
// deviation is used throughout, so a single rating yields a dispersion
// component of 100.
func Consensus(ratings []float64, categories []string) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sd, err := stats.StandardDeviationPopulation(stats.Float64Data(ratings))
	if err != nil {
		sd = 0
	}

	ratingConsensus := 100 - sd*25
	if ratingConsensus < 0 {
		ratingConsensus = 0
	}

	var dominantPct float64
	if len(categories) > 0 {
		counts := make(map[string]int)
		max := 0
		for _, c := range categories {
			counts[c]++
			if counts[c] > max {
				max = counts[c]
			}
		}
		dominantPct = float64(max) / float64(len(categories)) * 100
	}

	result, err := stats.Round(ratingConsensus*0.7+dominantPct*0.3, 2)
	if err != nil {
		return 0
	}
	return result
}
