package collector

import (
	"bytes"
	"context"
	"log"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/radarjus/newsradar/internal/portal"
)

// RSSFetcher retrieves and parses one feed URL into normalized items.
// It never returns an error: any failure is logged and yields zero items,
// so one broken feed cannot take down an aggregation run.
type RSSFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

func NewRSSFetcher(client *resty.Client) *RSSFetcher {
	if client == nil {
		client = NewClient()
	}
	return &RSSFetcher{client: client, parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Fetch(ctx context.Context, p portal.Portal, feedURL string) []NewsItem {
	resp, err := f.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		log.Printf("rss %s: fetch %s: %v", p.Code, feedURL, err)
		return nil
	}
	if !resp.IsSuccess() {
		log.Printf("rss %s: fetch %s: status %d", p.Code, feedURL, resp.StatusCode())
		return nil
	}

	body := resp.Body()
	if len(body) > maxResponseBytes {
		body = body[:maxResponseBytes]
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		log.Printf("rss %s: parse %s: %v", p.Code, feedURL, err)
		return nil
	}

	now := time.Now()
	items := make([]NewsItem, 0, MaxItemsPerSource)
	for _, entry := range feed.Items {
		if len(items) >= MaxItemsPerSource {
			break
		}

		title := cleanText(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}

		items = append(items, NewsItem{
			Portal:      p.Code,
			Title:       title,
			Preview:     cleanText(entry.Description),
			ImageURL:    feedItemImage(entry, p.BaseURL),
			NewsURL:     link,
			PublishedAt: feedItemTime(entry, now),
			Via:         "rss",
		})
	}

	return items
}

// feedItemImage resolves an item's image in fixed preference order:
// enclosure, then media:content, then the first <img> embedded in the
// description. Only URLs that look like image files are accepted from the
// structured fields; relative URLs resolve against the portal base.
func feedItemImage(entry *gofeed.Item, baseURL string) string {
	for _, enc := range entry.Enclosures {
		if enc != nil && looksLikeImage(enc.URL) {
			return ResolveURL(enc.URL, baseURL)
		}
	}

	if media, ok := entry.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if u := ext.Attrs["url"]; looksLikeImage(u) {
				return ResolveURL(u, baseURL)
			}
		}
	}

	if src := firstImgSrc(entry.Description); src != "" {
		return ResolveURL(src, baseURL)
	}
	return ""
}

// feedItemTime picks the published timestamp, trying progressively looser
// parsing before falling back to fetch time. The fallback makes dateless
// items sort as newest; callers rely on that (long-standing behavior).
func feedItemTime(entry *gofeed.Item, now time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	if raw := strings.TrimSpace(entry.Published); raw != "" {
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t
		}
	}
	return now
}
