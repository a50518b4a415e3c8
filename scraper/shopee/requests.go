package shopee

import (
	"fmt"
	"net/url"
)

// RequestBuilder constructs source-specific API URLs. It holds no state
// beyond the base URL.
type RequestBuilder struct {
	baseURL string
}

// NewRequestBuilder creates a RequestBuilder for the given site base URL.
func NewRequestBuilder(baseURL string) *RequestBuilder {
	return &RequestBuilder{baseURL: baseURL}
}

// SearchURL builds the keyword-search endpoint. Search pagination uses the
// "newest" cursor rather than a plain offset.
func (b *RequestBuilder) SearchURL(keyword string, newest, limit int) string {
	q := url.Values{}
	q.Set("by", "relevancy")
	q.Set("keyword", keyword)
	q.Set("limit", fmt.Sprint(limit))
	q.Set("newest", fmt.Sprint(newest))
	q.Set("order", "desc")
	q.Set("page_type", "search")
	q.Set("scenario", "PAGE_GLOBAL_SEARCH")
	q.Set("source", "SRP")
	q.Set("version", "2")
	return b.baseURL + "/api/v4/search/search_items?" + q.Encode()
}

// ShopActiveURL builds the shop-page recommend endpoint for active items.
func (b *RequestBuilder) ShopActiveURL(shopID string, offset, limit int) string {
	q := url.Values{}
	q.Set("bundle", "shop_page_product_tab_main")
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	q.Set("section", "shop_page_product_tab_main_sec")
	q.Set("shopid", shopID)
	return b.baseURL + "/api/v4/recommend/recommend?" + q.Encode()
}

// ShopSoldOutURL builds the shop search endpoint filtered to sold-out items.
func (b *RequestBuilder) ShopSoldOutURL(shopID string, offset, limit int) string {
	q := url.Values{}
	q.Set("filter_sold_out", "1")
	q.Set("item_card_use_scene", "search_items_popular")
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	q.Set("order", "desc")
	q.Set("shopid", shopID)
	q.Set("sort_by", "pop")
	q.Set("use_case", "4")
	return b.baseURL + "/api/v4/shop/search_items?" + q.Encode()
}

// RatingsURL builds the per-product ratings endpoint.
func (b *RequestBuilder) RatingsURL(shopID, itemID string, offset, limit int) string {
	q := url.Values{}
	q.Set("filter", "0")
	q.Set("flag", "1")
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	q.Set("type", "0")
	q.Set("exclude_filter", "1")
	q.Set("filter_size", "0")
	q.Set("fold_filter", "0")
	q.Set("relevant_reviews", "false")
	q.Set("request_source", "2")
	q.Set("shopid", shopID)
	q.Set("itemid", itemID)
	return b.baseURL + "/api/v2/item/get_ratings?" + q.Encode()
}
