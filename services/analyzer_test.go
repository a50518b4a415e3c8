package services

import (
	"strings"
	"testing"

	"shopee-scraper/storage"
	"shopee-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func reviewRow(product, rating, comment, tags string) map[string]string {
	return map[string]string{
		"Product Name": product,
		"Rating":       rating,
		"Comment":      comment,
		"Tags":         tags,
	}
}

func TestAnalyzeGroupsByProduct(t *testing.T) {
	table := &storage.Table{
		Columns: []string{"Product Name", "Username", "Rating", "Region", "Tags", "Comment"},
		Rows: []map[string]string{
			reviewRow("Mouse", "5", "great product i love it", "Quality"),
			reviewRow("Keyboard", "1", "terrible i hate it", ""),
			reviewRow("Mouse", "4", "works well happy with it", "Value"),
		},
	}

	summaries, err := NewAnalyzer(newTestLogger(), nil).Analyze(table)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries; want 2", len(summaries))
	}

	// First-appearance order is preserved even with parallel analysis.
	if summaries[0].ProductName != "Mouse" || summaries[1].ProductName != "Keyboard" {
		t.Errorf("order = [%s, %s]; want [Mouse, Keyboard]",
			summaries[0].ProductName, summaries[1].ProductName)
	}

	mouse := summaries[0]
	if mouse.TotalReviews != 2 {
		t.Errorf("Mouse.TotalReviews = %d; want 2", mouse.TotalReviews)
	}
	if mouse.AverageRating != 4.5 {
		t.Errorf("Mouse.AverageRating = %v; want 4.5", mouse.AverageRating)
	}
	if mouse.DominantSentiment != SentimentPositive {
		t.Errorf("Mouse.DominantSentiment = %q; want Positive", mouse.DominantSentiment)
	}

	keyboard := summaries[1]
	if keyboard.TotalReviews != 1 {
		t.Errorf("Keyboard.TotalReviews = %d; want 1", keyboard.TotalReviews)
	}
	if keyboard.NegativeCount != 1 {
		t.Errorf("Keyboard.NegativeCount = %d; want 1", keyboard.NegativeCount)
	}
}

func TestAnalyzeCountsSum(t *testing.T) {
	table := &storage.Table{
		Columns: []string{"Product Name", "Rating", "Tags", "Comment"},
		Rows: []map[string]string{
			reviewRow("A", "5", "excellent", ""),
			reviewRow("A", "3", "", ""),
			reviewRow("A", "1", "awful broken junk", ""),
		},
	}

	summaries, err := NewAnalyzer(newTestLogger(), nil).Analyze(table)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	s := summaries[0]
	if s.PositiveCount+s.NeutralCount+s.NegativeCount != s.TotalReviews {
		t.Errorf("category counts %d+%d+%d do not sum to %d reviews",
			s.PositiveCount, s.NeutralCount, s.NegativeCount, s.TotalReviews)
	}
}

func TestAnalyzeSkipsUnparsableRatings(t *testing.T) {
	table := &storage.Table{
		Columns: []string{"Product Name", "Rating", "Tags", "Comment"},
		Rows: []map[string]string{
			reviewRow("A", "5", "nice", ""),
			reviewRow("A", "not-a-number", "nice", ""),
		},
	}

	summaries, err := NewAnalyzer(newTestLogger(), nil).Analyze(table)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if summaries[0].AverageRating != 5 {
		t.Errorf("AverageRating = %v; want 5 (bad rating skipped)", summaries[0].AverageRating)
	}
	if summaries[0].TotalReviews != 2 {
		t.Errorf("TotalReviews = %d; want 2 (row still counted)", summaries[0].TotalReviews)
	}
}

func TestAnalyzeMissingColumns(t *testing.T) {
	table := &storage.Table{
		Columns: []string{"Product Name", "Rating"},
		Rows:    nil,
	}

	_, err := NewAnalyzer(newTestLogger(), nil).Analyze(table)
	if err == nil {
		t.Fatal("expected schema error")
	}
	schemaErr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("error type = %T; want *SchemaError", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("Missing = %v; want Comment and Tags", schemaErr.Missing)
	}
	if !strings.Contains(err.Error(), "Comment") {
		t.Errorf("error message %q does not name the missing column", err.Error())
	}
}

func TestAnalyzeEmptyTable(t *testing.T) {
	table := &storage.Table{
		Columns: []string{"Product Name", "Rating", "Tags", "Comment"},
	}

	summaries, err := NewAnalyzer(newTestLogger(), nil).Analyze(table)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("got %d summaries; want 0", len(summaries))
	}
}

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   string
	}{
		{"empty", map[string]int{}, SentimentNone},
		{"clear winner", map[string]int{SentimentPositive: 1, SentimentNegative: 4}, SentimentNegative},
		{"tie prefers positive", map[string]int{SentimentPositive: 2, SentimentNegative: 2}, SentimentPositive},
		{"all zero", map[string]int{SentimentPositive: 0}, SentimentNone},
	}

	for _, tt := range tests {
		if got := dominantCategory(tt.counts); got != tt.want {
			t.Errorf("%s: dominantCategory = %q; want %q", tt.name, got, tt.want)
		}
	}
}
