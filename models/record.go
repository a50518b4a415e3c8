package models

// Item status values as they appear in the source API.
const (
	StatusActive  = "active"
	StatusSoldOut = "sold_out"
)

// priceScale is the fixed-point denominator used by the source API for all
// price fields (500000 on the wire means 5.00 in currency units).
const priceScale = 100000

// NormalizePrice converts a fixed-point price integer from the source into a
// decimal currency value. Absent or non-positive prices normalize to 0 so
// downstream arithmetic stays total.
func NormalizePrice(raw float64) float64 {
	if raw <= 0 {
		return 0
	}
	return raw / priceScale
}

// ListingRecord is the common normalized form of one product listing,
// regardless of which source endpoint it came from.
type ListingRecord struct {
	ShopID              int64
	ItemID              int64
	Name                string
	PriceCurrent        float64
	DiscountPct         float64
	PriceMin            float64
	PriceMax            float64
	PriceBeforeDiscount float64
	Stock               int
	SoldCount           int
	Status              string
}

// ReviewRecord is one customer review for a product. Records are written to
// the output table as soon as their page is processed; nothing is retained
// in memory across products.
type ReviewRecord struct {
	ProductName string
	Username    string
	RatingStar  int
	Region      string
	Tags        string
	Comment     string
}

// ProductRef identifies a product to fetch reviews for, read from an input
// listing table.
type ProductRef struct {
	ShopID string
	ItemID string
	Name   string
}

// ProductSummary is the per-product analytics row emitted by the analyzer.
// It is derived once and never mutated.
type ProductSummary struct {
	ProductName           string
	TotalReviews          int
	AverageRating         float64
	AverageSentimentScore float64
	DominantSentiment     string
	PositiveCount         int
	NeutralCount          int
	NegativeCount         int
	ConsensusScore        float64
	TopKeywords           []string
	WordcloudImagePath    string
}
