package services

import (
	"fmt"
	"sort"
	"strings"

	"shopee-scraper/models"
)

// PrintReport renders the analysis results as a terminal report.
func PrintReport(summaries []models.ProductSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 REVIEW ANALYSIS SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	totalReviews := 0
	for _, s := range summaries {
		totalReviews += s.TotalReviews
	}
	fmt.Printf("  Products analyzed : \033[1m%d\033[0m\n", len(summaries))
	fmt.Printf("  Total reviews     : \033[1m%d\033[0m\n", totalReviews)
	fmt.Println()

	// Top consensus
	fmt.Printf("\033[1;33m  Top 5 by Consensus Score\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(summaries) == 0 {
		fmt.Printf("  No products found\n")
	} else {
		ranked := make([]models.ProductSummary, len(summaries))
		copy(ranked, summaries)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].ConsensusScore > ranked[j].ConsensusScore
		})
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		for i, s := range ranked {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.1f\033[0m\n",
				i+1, truncate(s.ProductName, 38), s.ConsensusScore)
		}
	}
	fmt.Println()

	// Per-product detail
	for _, s := range summaries {
		fmt.Printf("\033[1;33m  %s\033[0m\n", truncate(s.ProductName, 50))
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Reviews            : %d\n", s.TotalReviews)
		fmt.Printf("  Average rating     : \033[1;32m%.2f ★\033[0m\n", s.AverageRating)
		fmt.Printf("  Sentiment score    : %.3f\n", s.AverageSentimentScore)
		fmt.Printf("  Dominant sentiment : %s\n", colorSentiment(s.DominantSentiment))
		fmt.Printf("  Breakdown          : %d 👍 / %d 😐 / %d 👎\n",
			s.PositiveCount, s.NeutralCount, s.NegativeCount)
		fmt.Printf("  Consensus score    : \033[1m%.1f\033[0m\n", s.ConsensusScore)
		if len(s.TopKeywords) > 0 {
			fmt.Printf("  Top keywords       : %s\n", strings.Join(s.TopKeywords, ", "))
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func colorSentiment(category string) string {
	switch category {
	case SentimentPositive:
		return "\033[1;32m" + category + "\033[0m"
	case SentimentNegative:
		return "\033[1;31m" + category + "\033[0m"
	default:
		return category
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
