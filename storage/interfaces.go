package storage

import "shopee-scraper/models"

// ListingSink is the interface any listing storage backend must satisfy.
type ListingSink interface {
	WriteListings(records []models.ListingRecord) error
	Close() error
}

// ReviewSink persists review records as they are scraped.
type ReviewSink interface {
	AppendReviews(records []models.ReviewRecord) error
	Close() error
}

var (
	_ ListingSink = (*ListingWriter)(nil)
	_ ReviewSink  = (*ReviewWriter)(nil)
)
