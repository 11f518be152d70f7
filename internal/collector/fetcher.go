package collector

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// Per-source cap: bounds fetch cost and cache growth.
	MaxItemsPerSource = 10

	fetchTimeout     = 8 * time.Second
	maxResponseBytes = 2 << 20 // 2 MiB
	userAgent        = "NewsRadarBot/1.0 (+https://github.com/radarjus/newsradar)"
)

// NewsItem is one normalized article reference, regardless of which kind of
// source it came from.
type NewsItem struct {
	Portal      string    `json:"portal"`
	Title       string    `json:"title"`
	Preview     string    `json:"preview,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	NewsURL     string    `json:"newsUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	// Via records which extraction path produced the item: "rss" or "html".
	Via string `json:"-"`
}

// NewClient returns the outbound HTTP client shared by feed fetching and
// image enrichment. News portals are slow and occasionally hostile, so the
// timeout is short and the user agent identifies us.
func NewClient() *resty.Client {
	return resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
}
