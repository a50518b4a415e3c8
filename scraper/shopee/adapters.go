package shopee

import (
	"strconv"
	"strings"

	"shopee-scraper/models"
)

// The source answers each endpoint with a different nested JSON shape. The
// adapters below are the only place that knows those shapes; each is total
// over "missing container", "empty list" and "valid list" inputs. The second
// return value reports whether the expected container was present at all.

// extractSearchItems handles {"items": [{"item_basic": {...}}, ...]}.
func extractSearchItems(resp map[string]any) ([]map[string]any, bool) {
	return itemList(resp["items"])
}

// extractShopActiveItems handles
// {"data": {"sections": [{"data": {"item": [...]}}]}}.
func extractShopActiveItems(resp map[string]any) ([]map[string]any, bool) {
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	sections, ok := data["sections"].([]any)
	if !ok || len(sections) == 0 {
		return nil, false
	}
	first, ok := sections[0].(map[string]any)
	if !ok {
		return nil, false
	}
	sectionData, ok := first["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	return itemList(sectionData["item"])
}

// extractSoldOutItems handles the shop search shape, which nests item_basic
// under a top-level "items" list like search does.
func extractSoldOutItems(resp map[string]any) ([]map[string]any, bool) {
	return itemList(resp["items"])
}

// extractRatings handles {"data": {"ratings": [...]}}.
func extractRatings(resp map[string]any) ([]map[string]any, bool) {
	data, ok := resp["data"].(map[string]any)
	if !ok {
		return nil, false
	}
	return itemList(data["ratings"])
}

func itemList(v any) ([]map[string]any, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items, true
}

// errorCode reports the top-level error marker of a response. Numeric codes
// come back as-is; the session layer reports network failures as string
// markers, which map to -1.
func errorCode(resp map[string]any) (int, bool) {
	v, present := resp["error"]
	if !present || v == nil {
		return 0, false
	}
	switch code := v.(type) {
	case float64:
		return int(code), true
	case int:
		return code, true
	case string:
		return -1, true
	default:
		return -1, true
	}
}

// listingFromItemBasic normalizes a search or sold-out entry, where the
// fields live under "item_basic".
func listingFromItemBasic(item map[string]any, defaultStatus string) models.ListingRecord {
	ib, _ := item["item_basic"].(map[string]any)
	return listingFromFields(ib, defaultStatus)
}

// listingFromShopItem normalizes a shop-active entry, whose fields sit at
// the top level. The endpoint only ever returns active items.
func listingFromShopItem(item map[string]any) models.ListingRecord {
	rec := listingFromFields(item, models.StatusActive)
	rec.Status = models.StatusActive
	return rec
}

func listingFromFields(fields map[string]any, defaultStatus string) models.ListingRecord {
	rec := models.ListingRecord{
		ShopID:              asInt64(fields["shopid"]),
		ItemID:              asInt64(fields["itemid"]),
		Name:                asString(fields["name"]),
		PriceCurrent:        models.NormalizePrice(asFloat(fields["price"])),
		PriceMin:            models.NormalizePrice(asFloat(fields["price_min"])),
		PriceMax:            models.NormalizePrice(asFloat(fields["price_max"])),
		PriceBeforeDiscount: models.NormalizePrice(asFloat(fields["price_before_discount"])),
		Stock:               int(asFloat(fields["stock"])),
		SoldCount:           int(asFloat(fields["historical_sold"])),
		Status:              defaultStatus,
	}

	if raw, ok := fields["raw_discount"]; ok {
		rec.DiscountPct = asFloat(raw)
	} else {
		rec.DiscountPct = discountValue(fields["discount"])
	}

	if status := asString(fields["item_status"]); status != "" {
		rec.Status = status
	}
	return rec
}

// reviewFromRating normalizes one rating entry into a ReviewRecord.
func reviewFromRating(productName string, rating map[string]any) models.ReviewRecord {
	rec := models.ReviewRecord{
		ProductName: productName,
		Username:    "Anonymous",
		Region:      "PH",
		RatingStar:  int(asFloat(rating["rating_star"])),
	}

	if name, ok := rating["author_username"].(string); ok {
		rec.Username = name
	}
	if region, ok := rating["region"].(string); ok {
		rec.Region = region
	}
	if tags, ok := rating["template_tags"].([]any); ok {
		parts := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok {
				parts = append(parts, s)
			}
		}
		rec.Tags = strings.Join(parts, ", ")
	}
	rec.Comment = strings.ReplaceAll(asString(rating["comment"]), "\n", " ")

	return rec
}

// discountValue accepts the "discount" field, which shows up either as a
// number or as a string like "50%".
func discountValue(v any) float64 {
	switch d := v.(type) {
	case float64:
		return d
	case string:
		n, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(d), "%"), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asInt64(v any) int64 {
	f, _ := v.(float64)
	return int64(f)
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
