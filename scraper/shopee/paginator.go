package shopee

import (
	"shopee-scraper/models"
	"shopee-scraper/utils"
)

// Source describes one listing endpoint to the generic paginator: how to
// build a page URL from the current offset, how to pull the item list out of
// the response shape, and how to normalize a single item.
type Source struct {
	Name      string
	Limit     int
	BuildURL  func(offset int) string
	Extract   func(resp map[string]any) ([]map[string]any, bool)
	Normalize func(item map[string]any) models.ListingRecord
}

// Paginator drives the offset/cursor page loop shared by all listing
// sources. Pages are fetched strictly in increasing offset order because
// each page's termination decision depends on the previous page's content.
type Paginator struct {
	exec    Executor
	guard   *CaptchaGuard
	limiter *utils.RateLimiter
	logger  *utils.Logger
}

// NewPaginator creates a paginator over the given executor.
func NewPaginator(exec Executor, guard *CaptchaGuard, limiter *utils.RateLimiter, logger *utils.Logger) *Paginator {
	return &Paginator{exec: exec, guard: guard, limiter: limiter, logger: logger}
}

// Run fetches up to maxPages pages from the source and returns the
// normalized records in arrival order. An empty page, a missing container or
// a non-sentinel error response all end the loop quietly; whatever was
// accumulated so far is still returned.
func (p *Paginator) Run(src Source, maxPages int) []models.ListingRecord {
	records := make([]models.ListingRecord, 0, src.Limit)
	offset := 0

	for page := 0; page < maxPages; page++ {
		p.logger.Info("[%s] Fetching page %d...", src.Name, page+1)

		resp, err := p.guard.Call(p.exec, src.BuildURL(offset))
		if err != nil {
			p.logger.Error("[%s] Request failed: %v", src.Name, err)
			break
		}

		if code, hasErr := errorCode(resp); hasErr && code != 0 {
			p.logger.Warn("[%s] Error response (code %d), stopping", src.Name, code)
			break
		}

		items, ok := src.Extract(resp)
		if !ok {
			p.logger.Info("[%s] Expected container missing, end of data", src.Name)
			break
		}
		if len(items) == 0 {
			p.logger.Info("[%s] No more items found", src.Name)
			break
		}

		for _, item := range items {
			records = append(records, src.Normalize(item))
		}

		offset += src.Limit
		p.limiter.Wait()
	}

	return records
}
