package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"shopee-scraper/models"
)

// utf8BOM marks output files as UTF-8 for spreadsheet tools.
const utf8BOM = "\uFEFF"

var listingHeader = []string{
	"Shop ID", "Item ID", "Product Name",
	"Price (Current)", "Discount %",
	"Price Min", "Price Max", "Price Before Discount",
	"Stock", "Sold", "Item Status",
}

var reviewHeader = []string{
	"Product Name", "Username", "Rating", "Region", "Tags", "Comment",
}

var summaryHeader = []string{
	"Product Name", "Total Reviews", "Average Rating", "Average Sentiment Score",
	"Dominant Sentiment", "Positive Reviews", "Neutral Reviews", "Negative Reviews",
	"Consensus Score", "Top Keywords", "WordCloud Image",
}

// ListingWriter writes listing records to a CSV file. Safe for concurrent use.
type ListingWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewListingWriter creates (or truncates) the CSV file at the given path and
// writes the BOM plus header row. Intermediate directories are created
// automatically.
func NewListingWriter(path string) (*ListingWriter, error) {
	f, w, err := createTable(path, listingHeader)
	if err != nil {
		return nil, err
	}
	return &ListingWriter{file: f, writer: w}, nil
}

// WriteListings appends the records to the file.
func (c *ListingWriter) WriteListings(records []models.ListingRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ShopID, 10),
			strconv.FormatInt(r.ItemID, 10),
			r.Name,
			formatFloat(r.PriceCurrent),
			formatFloat(r.DiscountPct),
			formatFloat(r.PriceMin),
			formatFloat(r.PriceMax),
			formatFloat(r.PriceBeforeDiscount),
			strconv.Itoa(r.Stock),
			strconv.Itoa(r.SoldCount),
			r.Status,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write listing row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *ListingWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// ReviewWriter appends review records to a CSV file. The header is written
// only when the file is new, so successive scraping runs accumulate into one
// master table.
type ReviewWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewReviewWriter opens the CSV file at the given path in append mode.
func NewReviewWriter(path string) (*ReviewWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv: open file %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: stat file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if _, err := f.WriteString(utf8BOM); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("csv: write BOM: %w", err)
		}
		if err := w.Write(reviewHeader); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("csv: write header: %w", err)
		}
		w.Flush()
	}

	return &ReviewWriter{file: f, writer: w}, nil
}

// AppendReviews writes the records to the end of the file.
func (c *ReviewWriter) AppendReviews(records []models.ReviewRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		row := []string{
			r.ProductName,
			r.Username,
			strconv.Itoa(r.RatingStar),
			r.Region,
			r.Tags,
			r.Comment,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write review row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *ReviewWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// SummaryWriter writes product analysis rows.
type SummaryWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewSummaryWriter creates (or truncates) the analysis output file.
func NewSummaryWriter(path string) (*SummaryWriter, error) {
	f, w, err := createTable(path, summaryHeader)
	if err != nil {
		return nil, err
	}
	return &SummaryWriter{file: f, writer: w}, nil
}

// WriteSummaries appends one row per product summary.
func (c *SummaryWriter) WriteSummaries(summaries []models.ProductSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range summaries {
		row := []string{
			s.ProductName,
			strconv.Itoa(s.TotalReviews),
			formatFloat(s.AverageRating),
			formatFloat(s.AverageSentimentScore),
			s.DominantSentiment,
			strconv.Itoa(s.PositiveCount),
			strconv.Itoa(s.NeutralCount),
			strconv.Itoa(s.NegativeCount),
			formatFloat(s.ConsensusScore),
			strings.Join(s.TopKeywords, ", "),
			s.WordcloudImagePath,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write summary row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *SummaryWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func createTable(path string, header []string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	if _, err := f.WriteString(utf8BOM); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return f, w, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
