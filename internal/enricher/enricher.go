package enricher

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/radarjus/newsradar/internal/collector"
	"github.com/radarjus/newsradar/internal/processor"
)

const (
	// maxCandidates bounds the external-call fan-out of one aggregation run;
	// items beyond it simply stay imageless.
	maxCandidates = 20
	concurrency   = 5
	phaseTimeout  = 15 * time.Second

	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

// ImageEnricher fetches article pages to recover a representative image for
// items that came through without one. Strictly best-effort: every failure
// leaves the item as it was.
type ImageEnricher struct {
	client *resty.Client
}

func New(client *resty.Client) *ImageEnricher {
	if client == nil {
		client = collector.NewClient()
	}
	return &ImageEnricher{client: client}
}

// EnrichImages fills ImageURL in place for up to maxCandidates imageless
// items, fetching article pages with a fixed-size worker pool. The whole
// phase runs under its own deadline so slow article pages cannot stall the
// request beyond it.
func (e *ImageEnricher) EnrichImages(ctx context.Context, items []processor.ProcessedItem) {
	var candidates []int
	for i := range items {
		if items[i].ImageURL == "" {
			candidates = append(candidates, i)
			if len(candidates) == maxCandidates {
				break
			}
		}
	}
	if len(candidates) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, phaseTimeout)
	defer cancel()

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, idx := range candidates {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			img, err := e.fetchImage(ctx, items[idx].NewsURL)
			if err != nil {
				log.Printf("enrich %s: %v", items[idx].NewsURL, err)
				return
			}
			// Workers touch disjoint indices, so no locking here.
			items[idx].ImageURL = img
		}(idx)
	}

	wg.Wait()
}

// fetchImage fetches one article page and extracts og:image, falling back to
// the first <img> in the document. Relative URLs resolve against the
// article's own origin.
func (e *ImageEnricher) fetchImage(ctx context.Context, articleURL string) (string, error) {
	resp, err := e.client.R().SetContext(ctx).Get(articleURL)
	if err != nil {
		return "", err
	}
	if !resp.IsSuccess() {
		return "", nil
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if u := collector.ResolveURL(strings.TrimSpace(og), articleURL); u != "" {
			return u, nil
		}
	}
	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		return collector.ResolveURL(strings.TrimSpace(src), articleURL), nil
	}
	return "", nil
}
