package shopee

import (
	"os"
	"path/filepath"
	"testing"

	"shopee-scraper/config"
	"shopee-scraper/storage"
	"shopee-scraper/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:          "https://shopee.ph",
		SearchPageLimit:  2,
		ShopPageLimit:    2,
		RatingsPageLimit: 50,
		MaxActivePages:   5,
		MaxSoldOutPages:  5,
	}
}

func TestScrapeSearchWritesListings(t *testing.T) {
	exec := &scriptedExecutor{responses: []map[string]any{
		itemsResponse("Mouse", "Keyboard"),
		itemsResponse(),
	}}
	outPath := filepath.Join(t.TempDir(), "search.csv")

	count, err := New(testConfig(), exec, utils.NewLogger(), nil).
		ScrapeSearch("peripherals", 10, outPath)
	if err != nil {
		t.Fatalf("ScrapeSearch: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d; want 2", count)
	}

	table, err := storage.ReadTable(outPath)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(table.Rows))
	}
	if table.Rows[0]["Product Name"] != "Mouse" {
		t.Errorf("first row = %v", table.Rows[0])
	}
}

func TestScrapeReviewsSkipsRowsMissingIDs(t *testing.T) {
	dir := t.TempDir()

	inputPath := filepath.Join(dir, "items.csv")
	input := "Shop ID,Item ID,Product Name\n1,2,Gadget\n,,Broken Row\n"
	if err := os.WriteFile(inputPath, []byte(input), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	exec := &scriptedExecutor{responses: []map[string]any{
		ratingsResponse(2),
		ratingsResponse(0),
	}}
	outPath := filepath.Join(dir, "reviews.csv")

	products, total, err := New(testConfig(), exec, utils.NewLogger(), nil).
		ScrapeReviews(inputPath, outPath, 100)
	if err != nil {
		t.Fatalf("ScrapeReviews: %v", err)
	}
	if products != 1 {
		t.Errorf("products = %d; want 1 (row without IDs skipped)", products)
	}
	if total != 2 {
		t.Errorf("total = %d; want 2", total)
	}

	table, err := storage.ReadTable(outPath)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 2 || table.Rows[0]["Product Name"] != "Gadget" {
		t.Errorf("rows = %v; want two Gadget reviews", table.Rows)
	}
}

func TestScrapeShopBothSources(t *testing.T) {
	active := map[string]any{
		"data": map[string]any{
			"sections": []any{
				map[string]any{
					"data": map[string]any{
						"item": []any{
							map[string]any{"name": "Active Item"},
						},
					},
				},
			},
		},
	}

	exec := &scriptedExecutor{responses: []map[string]any{
		active,
		{"data": map[string]any{"sections": []any{}}}, // active exhausted
		itemsResponse("Sold Out Item"),
		itemsResponse(), // sold-out exhausted
	}}
	outPath := filepath.Join(t.TempDir(), "shop.csv")

	nActive, nSoldOut, err := New(testConfig(), exec, utils.NewLogger(), nil).
		ScrapeShop("42", true, true, outPath)
	if err != nil {
		t.Fatalf("ScrapeShop: %v", err)
	}
	if nActive != 1 || nSoldOut != 1 {
		t.Errorf("counts = (%d, %d); want (1, 1)", nActive, nSoldOut)
	}

	table, err := storage.ReadTable(outPath)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(table.Rows))
	}
	if table.Rows[0]["Item Status"] != "active" || table.Rows[1]["Item Status"] != "sold_out" {
		t.Errorf("statuses = %q, %q", table.Rows[0]["Item Status"], table.Rows[1]["Item Status"])
	}
}
