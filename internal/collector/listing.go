package collector

import (
	"context"
	"log"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/radarjus/newsradar/internal/portal"
)

// minAnchorTextLen filters out navigation links, "leia mais" buttons and
// icon anchors that match the article URL pattern by accident.
const minAnchorTextLen = 10

// ListingFetcher is the fallback for portals without a usable feed: it
// scrapes article links off an HTML listing page using the portal's
// article-URL pattern. Listing pages expose no dates, so items get the
// fetch time and no preview or image.
type ListingFetcher struct{}

func NewListingFetcher() *ListingFetcher {
	return &ListingFetcher{}
}

func (f *ListingFetcher) Fetch(ctx context.Context, p portal.Portal, listingURL string) []NewsItem {
	if ctx.Err() != nil {
		return nil
	}
	if p.ArticlePattern == nil {
		log.Printf("listing %s: no article pattern configured", p.Code)
		return nil
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(fetchTimeout)

	now := time.Now()
	seen := make(map[string]struct{})
	items := make([]NewsItem, 0, MaxItemsPerSource)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if len(items) >= MaxItemsPerSource {
			return
		}

		href := e.Request.AbsoluteURL(e.Attr("href"))
		if href == "" || !p.ArticlePattern.MatchString(href) {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}

		title := cleanText(e.Text)
		if len([]rune(title)) < minAnchorTextLen {
			return
		}

		items = append(items, NewsItem{
			Portal:      p.Code,
			Title:       title,
			NewsURL:     href,
			PublishedAt: now,
			Via:         "html",
		})
	})

	if err := c.Visit(listingURL); err != nil {
		log.Printf("listing %s: visit %s: %v", p.Code, listingURL, err)
		return nil
	}

	return items
}
