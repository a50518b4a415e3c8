// Package shopee implements the fetch-paginate-retry core: per-source
// paginators over a shared authenticated session, captcha recovery, and
// adaptive throttling.
package shopee

import (
	"fmt"
	"time"

	"shopee-scraper/config"
	"shopee-scraper/models"
	"shopee-scraper/storage"
	"shopee-scraper/utils"
)

// Scraper orchestrates the scraping modes over one executor session.
type Scraper struct {
	cfg      *config.Config
	exec     Executor
	guard    *CaptchaGuard
	limiter  *utils.RateLimiter
	logger   *utils.Logger
	requests *RequestBuilder
}

// New creates a ready-to-use Scraper. The waiter decides how captcha
// resolution blocks (terminal prompt or task state transition).
func New(cfg *config.Config, exec Executor, logger *utils.Logger, wait Waiter) *Scraper {
	return &Scraper{
		cfg:   cfg,
		exec:  exec,
		guard: NewCaptchaGuard(logger, wait),
		limiter: utils.NewRateLimiter(
			time.Duration(cfg.RateLimitMinSec)*time.Second,
			time.Duration(cfg.RateLimitMaxSec)*time.Second,
		),
		logger:   logger,
		requests: NewRequestBuilder(cfg.BaseURL),
	}
}

// ScrapeSearch pages through keyword search results and writes every listing
// to outPath. Returns the number of records written.
func (s *Scraper) ScrapeSearch(keyword string, maxPages int, outPath string) (int, error) {
	s.logger.Info("[search] Searching for: %s", keyword)

	writer, err := storage.NewListingWriter(outPath)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	limit := s.cfg.SearchPageLimit
	src := Source{
		Name:  "search",
		Limit: limit,
		BuildURL: func(newest int) string {
			return s.requests.SearchURL(keyword, newest, limit)
		},
		Extract: extractSearchItems,
		Normalize: func(item map[string]any) models.ListingRecord {
			return listingFromItemBasic(item, models.StatusActive)
		},
	}

	pag := NewPaginator(s.exec, s.guard, s.limiter, s.logger)
	count, err := s.collect(pag, src, maxPages, writer)
	if err != nil {
		return 0, err
	}

	s.logger.Info("[search] Found %d items, saved to %s", count, outPath)
	return count, nil
}

// collect runs one source to exhaustion and hands the records to the sink.
func (s *Scraper) collect(pag *Paginator, src Source, maxPages int, sink storage.ListingSink) (int, error) {
	records := pag.Run(src, maxPages)
	if err := sink.WriteListings(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ScrapeShop pages through a shop's active and/or sold-out items and writes
// them all to one file. Returns the active and sold-out counts.
func (s *Scraper) ScrapeShop(shopID string, includeActive, includeSoldOut bool, outPath string) (int, int, error) {
	writer, err := storage.NewListingWriter(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer writer.Close()

	pag := NewPaginator(s.exec, s.guard, s.limiter, s.logger)
	limit := s.cfg.ShopPageLimit

	var totalActive, totalSoldOut int

	if includeActive {
		s.logger.Info("[shop] Fetching active items for shop %s", shopID)
		src := Source{
			Name:  "shop-active",
			Limit: limit,
			BuildURL: func(offset int) string {
				return s.requests.ShopActiveURL(shopID, offset, limit)
			},
			Extract:   extractShopActiveItems,
			Normalize: listingFromShopItem,
		}
		totalActive, err = s.collect(pag, src, s.cfg.MaxActivePages, writer)
		if err != nil {
			return totalActive, totalSoldOut, err
		}
	}

	if includeSoldOut {
		s.logger.Info("[shop] Fetching sold-out items for shop %s", shopID)
		src := Source{
			Name:  "shop-soldout",
			Limit: limit,
			BuildURL: func(offset int) string {
				return s.requests.ShopSoldOutURL(shopID, offset, limit)
			},
			Extract: extractSoldOutItems,
			Normalize: func(item map[string]any) models.ListingRecord {
				return listingFromItemBasic(item, models.StatusSoldOut)
			},
		}
		totalSoldOut, err = s.collect(pag, src, s.cfg.MaxSoldOutPages, writer)
		if err != nil {
			return totalActive, totalSoldOut, err
		}
	}

	s.logger.Info("[shop] Active items: %d | Sold-out items: %d, saved to %s",
		totalActive, totalSoldOut, outPath)
	return totalActive, totalSoldOut, nil
}

// ScrapeReviews reads product refs from inputCSV and appends up to
// maxReviews reviews per product to outPath. A failure on one product never
// aborts the rest. Returns the number of products processed and total
// reviews collected.
func (s *Scraper) ScrapeReviews(inputCSV, outPath string, maxReviews int) (int, int, error) {
	refs, err := storage.ReadProductRefs(inputCSV)
	if err != nil {
		return 0, 0, err
	}

	writer, err := storage.NewReviewWriter(outPath)
	if err != nil {
		return 0, 0, err
	}
	defer writer.Close()

	pag := NewReviewPaginator(s.exec, s.guard, s.limiter, s.requests, s.logger, s.cfg.RatingsPageLimit)

	var products, total int
	for _, ref := range refs {
		if ref.ShopID == "" || ref.ItemID == "" {
			s.logger.Warn("[reviews] Skipping row, missing Shop ID or Item ID")
			continue
		}

		products++
		s.logger.Info("[reviews] Scraping reviews for: %s", ref.Name)

		count, err := s.scrapeProduct(pag, writer, ref, maxReviews)
		if err != nil {
			return products, total, err
		}
		total += count

		s.logger.Info("[reviews] %s: %d reviews scraped", ref.Name, count)
	}

	s.logger.Info("[reviews] Done. Products: %d, total reviews: %d, saved to %s",
		products, total, outPath)
	return products, total, nil
}

// scrapeProduct fetches and persists one product's reviews. Panics are
// contained here so one broken product cannot abort a multi-product run;
// sink failures still propagate because they affect every later product too.
func (s *Scraper) scrapeProduct(pag *ReviewPaginator, sink storage.ReviewSink, ref models.ProductRef, maxReviews int) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("[reviews] %s: %v", ref.Name, fmt.Errorf("recovered: %v", r))
			count, err = 0, nil
		}
	}()

	records := pag.Run(ref, maxReviews)
	if len(records) == 0 {
		return 0, nil
	}
	if err := sink.AppendReviews(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
