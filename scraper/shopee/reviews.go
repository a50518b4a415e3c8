package shopee

import (
	"shopee-scraper/models"
	"shopee-scraper/utils"
)

// ReviewPaginator fetches rating pages for one product at a time, starting
// at offset 0 and stopping once the accumulated count reaches the per-product
// cap or a page comes back empty. Full pages are always kept, so the result
// may overshoot the cap by less than one page.
type ReviewPaginator struct {
	exec     Executor
	guard    *CaptchaGuard
	limiter  *utils.RateLimiter
	logger   *utils.Logger
	requests *RequestBuilder
	limit    int
}

// NewReviewPaginator creates a review paginator with the given page size.
func NewReviewPaginator(exec Executor, guard *CaptchaGuard, limiter *utils.RateLimiter,
	requests *RequestBuilder, logger *utils.Logger, pageLimit int) *ReviewPaginator {
	return &ReviewPaginator{
		exec:     exec,
		guard:    guard,
		limiter:  limiter,
		logger:   logger,
		requests: requests,
		limit:    pageLimit,
	}
}

// Run accumulates up to maxReviews review records for the product, in
// arrival order.
func (p *ReviewPaginator) Run(ref models.ProductRef, maxReviews int) []models.ReviewRecord {
	var records []models.ReviewRecord
	offset := 0

	for len(records) < maxReviews {
		url := p.requests.RatingsURL(ref.ShopID, ref.ItemID, offset, p.limit)

		resp, err := p.guard.Call(p.exec, url)
		if err != nil {
			p.logger.Error("[reviews] %s: request failed: %v", ref.Name, err)
			break
		}

		ratings, ok := extractRatings(resp)
		if !ok {
			if code, hasErr := errorCode(resp); hasErr && code != 0 {
				p.logger.Warn("[reviews] %s: error response (code %d)", ref.Name, code)
			}
			break
		}
		if len(ratings) == 0 {
			break
		}

		for _, rating := range ratings {
			records = append(records, reviewFromRating(ref.Name, rating))
		}

		offset += p.limit
		p.limiter.Wait()
	}

	return records
}
