package aggregator

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/radarjus/newsradar/internal/collector"
	"github.com/radarjus/newsradar/internal/portal"
	"github.com/radarjus/newsradar/internal/processor"
)

// ErrNoNews is returned when a full fetch cycle produces zero items across
// every portal. Getting literally nothing after spending the whole fetch
// budget means something systemic broke, not that there is no news today.
var ErrNoNews = errors.New("Nenhuma notícia encontrada")

// Fetcher is the shape shared by the RSS and HTML-listing fetchers: one
// source URL in, zero or more items out, never an error.
type Fetcher interface {
	Fetch(ctx context.Context, p portal.Portal, sourceURL string) []collector.NewsItem
}

// Enricher fills missing images in place, best-effort.
type Enricher interface {
	EnrichImages(ctx context.Context, items []processor.ProcessedItem)
}

// Cache is the freshness-windowed store of the last successful aggregation.
type Cache interface {
	ReadFresh(ctx context.Context, window time.Duration) ([]processor.ProcessedItem, error)
	WriteBatch(ctx context.Context, items []processor.ProcessedItem, window time.Duration) error
}

// Aggregator produces a freshness-bounded, deduplicated, newest-first batch
// of items across all configured portals.
type Aggregator struct {
	portals  []portal.Portal
	rss      Fetcher
	listing  Fetcher
	enricher Enricher
	cache    Cache
	proc     *processor.SimpleProcessor
	window   time.Duration
}

func New(portals []portal.Portal, rss, listing Fetcher, enricher Enricher, cache Cache, window time.Duration) *Aggregator {
	return &Aggregator{
		portals:  portals,
		rss:      rss,
		listing:  listing,
		enricher: enricher,
		cache:    cache,
		proc:     processor.NewSimpleProcessor(),
		window:   window,
	}
}

// GetNews serves the cached batch when it is still inside the freshness
// window, otherwise runs a full fetch cycle and persists the result. The
// second return value reports whether the batch came from the cache.
func (a *Aggregator) GetNews(ctx context.Context) ([]processor.ProcessedItem, bool, error) {
	cached, err := a.cache.ReadFresh(ctx, a.window)
	if err != nil {
		// a broken cache read degrades to a fresh fetch
		log.Printf("cache read: %v", err)
	}
	if len(cached) > 0 {
		return cached, true, nil
	}

	items, err := a.FetchAll(ctx)
	if err != nil {
		return nil, false, err
	}

	if err := a.cache.WriteBatch(ctx, items, a.window); err != nil {
		// the fresh batch is still good for this caller
		log.Printf("cache write: %v", err)
	}

	return items, false, nil
}

// FetchAll runs one full fetch cycle, bypassing the cache read: sequential
// per-portal fetch, normalization, newest-first sort, image enrichment.
// It does not write the cache; callers decide that.
func (a *Aggregator) FetchAll(ctx context.Context) ([]processor.ProcessedItem, error) {
	var all []collector.NewsItem
	// Portals are fetched one after another on purpose: these sites
	// rate-limit aggressively, so peak outbound concurrency stays low.
	for _, p := range a.portals {
		if ctx.Err() != nil {
			break
		}
		items := a.fetchPortal(ctx, p)
		log.Printf("portal %s: %d items", p.Code, len(items))
		all = append(all, items...)
	}

	processed := a.proc.Process(all)
	if len(processed) == 0 {
		return nil, ErrNoNews
	}

	// Newest first. Items without a source date carry the fetch time, so
	// they land at the top.
	sort.SliceStable(processed, func(i, j int) bool {
		return processed[i].PublishedAt.After(processed[j].PublishedAt)
	})

	a.enricher.EnrichImages(ctx, processed)

	return processed, nil
}

// fetchPortal tries the portal's feeds in order, stopping at the first one
// that yields items; only when every feed comes up empty does it fall back
// to scraping the HTML listing pages, accumulating across all of them.
func (a *Aggregator) fetchPortal(ctx context.Context, p portal.Portal) []collector.NewsItem {
	for _, feedURL := range p.FeedURLs {
		if items := a.rss.Fetch(ctx, p, feedURL); len(items) > 0 {
			return items
		}
	}

	var items []collector.NewsItem
	for _, listingURL := range p.ListingURLs {
		items = append(items, a.listing.Fetch(ctx, p, listingURL)...)
	}
	return items
}
