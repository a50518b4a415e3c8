package services

import "testing"

func TestConsensusEmpty(t *testing.T) {
	if got := Consensus(nil, nil); got != 0 {
		t.Errorf("Consensus(nil, nil) = %v; want 0", got)
	}
}

func TestConsensusUnanimous(t *testing.T) {
	ratings := []float64{5, 5, 5}
	categories := []string{SentimentPositive, SentimentPositive, SentimentPositive}

	// Zero dispersion and full agreement: 0.7*100 + 0.3*100.
	if got := Consensus(ratings, categories); got != 100 {
		t.Errorf("Consensus = %v; want 100", got)
	}
}

func TestConsensusSplit(t *testing.T) {
	// Population stddev of [1, 5] is 2, so the rating component is
	// 100 - 2*25 = 50. Categories split evenly, dominant share 50%.
	ratings := []float64{1, 5}
	categories := []string{SentimentPositive, SentimentNegative}

	if got := Consensus(ratings, categories); got != 50 {
		t.Errorf("Consensus = %v; want 50", got)
	}
}

func TestConsensusSingleRating(t *testing.T) {
	got := Consensus([]float64{4}, []string{SentimentNeutral})
	if got != 100 {
		t.Errorf("Consensus = %v; want 100 (one rating has zero dispersion)", got)
	}
}

func TestConsensusDispersionFloor(t *testing.T) {
	// Extreme dispersion drives the rating component below zero; it must
	// clamp at 0 rather than go negative.
	ratings := []float64{1, 1, 1, 9, 9, 9}
	categories := []string{
		SentimentNegative, SentimentNegative, SentimentNegative,
		SentimentPositive, SentimentPositive, SentimentPositive,
	}

	got := Consensus(ratings, categories)
	// popSD = 4 -> rating component max(0, 100-100) = 0; dominant 50%.
	if got != 15 {
		t.Errorf("Consensus = %v; want 15", got)
	}
}

func TestConsensusNoCategories(t *testing.T) {
	if got := Consensus([]float64{5, 5}, nil); got != 70 {
		t.Errorf("Consensus = %v; want 70 (rating component only)", got)
	}
}
