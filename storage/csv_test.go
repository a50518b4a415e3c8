package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shopee-scraper/models"
)

func TestListingWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "listings.csv")

	w, err := NewListingWriter(path)
	if err != nil {
		t.Fatalf("NewListingWriter: %v", err)
	}
	records := []models.ListingRecord{
		{ShopID: 1, ItemID: 2, Name: "Mouse, wireless", PriceCurrent: 5.5, Status: models.StatusActive},
		{ShopID: 3, ItemID: 4, Name: "Keyboard", PriceCurrent: 10, Status: models.StatusSoldOut},
	}
	if err := w.WriteListings(records); err != nil {
		t.Fatalf("WriteListings: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(raw), utf8BOM) {
		t.Error("output file missing UTF-8 BOM")
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if !table.HasColumn("Shop ID") || !table.HasColumn("Item Status") {
		t.Errorf("columns = %v; missing expected headers", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(table.Rows))
	}
	if table.Rows[0]["Product Name"] != "Mouse, wireless" {
		t.Errorf("Product Name = %q; comma not preserved through quoting", table.Rows[0]["Product Name"])
	}
	if table.Rows[1]["Item Status"] != models.StatusSoldOut {
		t.Errorf("Item Status = %q; want %q", table.Rows[1]["Item Status"], models.StatusSoldOut)
	}
}

func TestReviewWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")

	first, err := NewReviewWriter(path)
	if err != nil {
		t.Fatalf("NewReviewWriter: %v", err)
	}
	if err := first.AppendReviews([]models.ReviewRecord{
		{ProductName: "A", Username: "u1", RatingStar: 5, Region: "PH"},
	}); err != nil {
		t.Fatalf("AppendReviews: %v", err)
	}
	first.Close()

	// Reopening must append without writing a second header.
	second, err := NewReviewWriter(path)
	if err != nil {
		t.Fatalf("NewReviewWriter (reopen): %v", err)
	}
	if err := second.AppendReviews([]models.ReviewRecord{
		{ProductName: "B", Username: "u2", RatingStar: 1, Region: "PH"},
	}); err != nil {
		t.Fatalf("AppendReviews (reopen): %v", err)
	}
	second.Close()

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows; want 2 across both sessions", len(table.Rows))
	}
	if table.Rows[0]["Product Name"] != "A" || table.Rows[1]["Product Name"] != "B" {
		t.Errorf("rows = %v; want A then B", table.Rows)
	}
}

func TestReadTableSniffsTabDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.tsv")
	content := "Shop ID\tItem ID\tProduct Name\n1\t2\tMouse\n"
	if err := os.WriteFile(path, []byte(utf8BOM+content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if table.Columns[0] != "Shop ID" {
		t.Errorf("first column = %q; BOM not stripped or delimiter wrong", table.Columns[0])
	}
	if len(table.Rows) != 1 || table.Rows[0]["Product Name"] != "Mouse" {
		t.Errorf("rows = %v; want one Mouse row", table.Rows)
	}
}

func TestReadTablePadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	content := "A,B,C\n1,2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	table, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if got := table.Rows[0]["C"]; got != "" {
		t.Errorf("missing cell = %q; want empty string", got)
	}
}

func TestReadProductRefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	content := "Shop ID,Item ID,Product Name\n 11 ,22,Mouse\n,,Nameless\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	refs, err := ReadProductRefs(path)
	if err != nil {
		t.Fatalf("ReadProductRefs: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs; want 2 (rows with missing IDs kept)", len(refs))
	}
	if refs[0].ShopID != "11" || refs[0].ItemID != "22" {
		t.Errorf("refs[0] = %+v; IDs not trimmed", refs[0])
	}
	if refs[1].ShopID != "" || refs[1].ItemID != "" {
		t.Errorf("refs[1] = %+v; want empty IDs preserved", refs[1])
	}
}
