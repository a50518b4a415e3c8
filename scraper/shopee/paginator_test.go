package shopee

import (
	"testing"

	"shopee-scraper/models"
	"shopee-scraper/utils"
)

func newTestPaginator(exec Executor) *Paginator {
	logger := utils.NewLogger()
	return NewPaginator(exec, NewCaptchaGuard(logger, nil), utils.NewRateLimiter(0, 0), logger)
}

func itemsResponse(names ...string) map[string]any {
	items := make([]any, 0, len(names))
	for _, n := range names {
		items = append(items, map[string]any{
			"item_basic": map[string]any{"name": n},
		})
	}
	return map[string]any{"items": items}
}

func testSource(limit int) Source {
	return Source{
		Name:     "test",
		Limit:    limit,
		BuildURL: func(offset int) string { return "http://x" },
		Extract:  extractSearchItems,
		Normalize: func(item map[string]any) models.ListingRecord {
			return listingFromItemBasic(item, models.StatusActive)
		},
	}
}

func TestPaginatorStopsOnEmptyPage(t *testing.T) {
	exec := &scriptedExecutor{responses: []map[string]any{
		itemsResponse("a", "b"),
		itemsResponse(),
	}}

	records := newTestPaginator(exec).Run(testSource(2), 10)
	if len(records) != 2 {
		t.Fatalf("got %d records; want 2", len(records))
	}
	if exec.calls != 2 {
		t.Errorf("calls = %d; want 2", exec.calls)
	}
	if records[0].Name != "a" || records[1].Name != "b" {
		t.Errorf("records out of order: %+v", records)
	}
}

func TestPaginatorEmptyFirstPage(t *testing.T) {
	exec := &scriptedExecutor{responses: []map[string]any{itemsResponse()}}

	records := newTestPaginator(exec).Run(testSource(2), 10)
	if len(records) != 0 {
		t.Errorf("got %d records; want 0", len(records))
	}
	if exec.calls != 1 {
		t.Errorf("calls = %d; want 1", exec.calls)
	}
}

func TestPaginatorHonorsMaxPages(t *testing.T) {
	// Every page is full, so only maxPages caps the loop.
	exec := &scriptedExecutor{responses: []map[string]any{itemsResponse("a", "b")}}

	records := newTestPaginator(exec).Run(testSource(2), 3)
	if exec.calls != 3 {
		t.Errorf("calls = %d; want 3", exec.calls)
	}
	if len(records) != 6 {
		t.Errorf("got %d records; want 6", len(records))
	}
}

func TestPaginatorStopsOnErrorResponse(t *testing.T) {
	exec := &scriptedExecutor{responses: []map[string]any{
		itemsResponse("a"),
		{"error": float64(4)},
	}}

	records := newTestPaginator(exec).Run(testSource(1), 10)
	if len(records) != 1 {
		t.Errorf("got %d records; want the 1 accumulated before the error", len(records))
	}
	if exec.calls != 2 {
		t.Errorf("calls = %d; want 2", exec.calls)
	}
}

func TestPaginatorStopsOnMissingContainer(t *testing.T) {
	exec := &scriptedExecutor{responses: []map[string]any{
		{"data": map[string]any{}},
	}}

	records := newTestPaginator(exec).Run(testSource(2), 10)
	if len(records) != 0 || exec.calls != 1 {
		t.Errorf("records = %d, calls = %d; want 0, 1", len(records), exec.calls)
	}
}
