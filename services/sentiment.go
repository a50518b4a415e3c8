package services

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Sentiment category labels.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
	SentimentNone     = "N/A"
)

// Polarity beyond ±neutralBand classifies as Positive/Negative; the band
// itself (including the boundary values) is Neutral.
const neutralBand = 0.1

// ScoreSentiment maps text to a polarity value in [-1, 1] using the VADER
// lexicon. Empty text scores 0; a scoring failure on one bad comment
// degrades to 0 rather than aborting the pipeline.
func ScoreSentiment(text string) (score float64) {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			score = 0
		}
	}()

	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

// CategorizeSentiment buckets a polarity score into three categories.
func CategorizeSentiment(score float64) string {
	switch {
	case score > neutralBand:
		return SentimentPositive
	case score < -neutralBand:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
