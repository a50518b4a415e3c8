package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"shopee-scraper/models"
	"shopee-scraper/storage"
	"shopee-scraper/utils"
	"shopee-scraper/wordcloud"
)

// Columns an input review table must expose.
var requiredColumns = []string{"Product Name", "Rating", "Comment", "Tags"}

const (
	topKeywordCount  = 5
	keywordMinLength = 3
	analyzerWorkers  = 4
)

// SchemaError reports an analysis input table missing required columns.
type SchemaError struct {
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("review table missing columns %v (available: %v)",
		e.Missing, e.Available)
}

// Analyzer turns a review table into per-product summaries.
type Analyzer struct {
	logger   *utils.Logger
	renderer wordcloud.Renderer
	pool     *utils.WorkerPool
}

// NewAnalyzer creates an Analyzer. The renderer is optional; with nil no
// word-cloud images are produced.
func NewAnalyzer(logger *utils.Logger, renderer wordcloud.Renderer) *Analyzer {
	return &Analyzer{
		logger:   logger,
		renderer: renderer,
		pool:     utils.NewWorkerPool(analyzerWorkers),
	}
}

// Analyze validates the table schema, groups rows by product name (first
// appearance order) and emits one summary per product. Groups are
// independent, so they are analyzed in parallel; output order is preserved.
// An empty table yields an empty slice, not an error.
func (a *Analyzer) Analyze(table *storage.Table) ([]models.ProductSummary, error) {
	var missing []string
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Available: table.Columns}
	}

	names, groups := groupByProduct(table.Rows)

	summaries := make([]models.ProductSummary, len(names))
	for i, name := range names {
		i, name := i, name
		rows := groups[name]
		a.pool.Submit(func() {
			summaries[i] = a.analyzeGroup(name, rows)
		})
	}
	a.pool.Wait()

	return summaries, nil
}

func (a *Analyzer) analyzeGroup(name string, rows []map[string]string) models.ProductSummary {
	a.logger.Info("[analyzer] Analyzing: %s (%d reviews)", name, len(rows))

	var textParts []string
	var ratings []float64
	var scores []float64
	var categories []string
	counts := map[string]int{}

	for _, row := range rows {
		comment := row["Comment"]
		tags := row["Tags"]
		textParts = append(textParts, comment, tags)

		if r, err := strconv.ParseFloat(strings.TrimSpace(row["Rating"]), 64); err == nil {
			ratings = append(ratings, r)
		}

		score := ScoreSentiment(NormalizeText(comment))
		category := CategorizeSentiment(score)
		scores = append(scores, score)
		categories = append(categories, category)
		counts[category]++
	}

	cleaned := NormalizeText(strings.Join(textParts, " "))

	summary := models.ProductSummary{
		ProductName:           name,
		TotalReviews:          len(rows),
		AverageRating:         roundedMean(ratings, 2),
		AverageSentimentScore: roundedMean(scores, 3),
		DominantSentiment:     dominantCategory(counts),
		PositiveCount:         counts[SentimentPositive],
		NeutralCount:          counts[SentimentNeutral],
		NegativeCount:         counts[SentimentNegative],
		ConsensusScore:        Consensus(ratings, categories),
		TopKeywords:           TopKeywords(cleaned, topKeywordCount, keywordMinLength),
	}

	if a.renderer != nil && strings.TrimSpace(cleaned) != "" {
		path, err := a.renderer.Render(cleaned, name)
		if err != nil {
			a.logger.Warn("[analyzer] Wordcloud for %s failed: %v", name, err)
		} else {
			summary.WordcloudImagePath = path
		}
	}

	return summary
}

// groupByProduct splits rows by product name, preserving the order in which
// each product first appears.
func groupByProduct(rows []map[string]string) ([]string, map[string][]map[string]string) {
	var names []string
	groups := make(map[string][]map[string]string)
	for _, row := range rows {
		name := row["Product Name"]
		if _, seen := groups[name]; !seen {
			names = append(names, name)
		}
		groups[name] = append(groups[name], row)
	}
	return names, groups
}

// dominantCategory picks the most frequent sentiment, breaking ties in the
// fixed order Positive, Neutral, Negative so results are reproducible.
func dominantCategory(counts map[string]int) string {
	if len(counts) == 0 {
		return SentimentNone
	}
	best := SentimentNone
	bestCount := -1
	for _, c := range []string{SentimentPositive, SentimentNeutral, SentimentNegative} {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	if bestCount <= 0 {
		return SentimentNone
	}
	return best
}

func roundedMean(values []float64, places int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0
	}
	rounded, err := stats.Round(mean, places)
	if err != nil {
		return mean
	}
	return rounded
}
