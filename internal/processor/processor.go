package processor

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/radarjus/newsradar/internal/collector"
)

// previewMaxRunes bounds the stored excerpt length.
const previewMaxRunes = 200

// ProcessedItem is the normalized shape written to storage and returned to
// API callers: deduplicated, title guaranteed non-empty, preview bounded.
type ProcessedItem struct {
	ID          string    `json:"-"`
	Portal      string    `json:"portal"`
	Title       string    `json:"title"`
	Preview     string    `json:"preview,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	NewsURL     string    `json:"newsUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	Via         string    `json:"-"`
}

// SimpleProcessor enforces the batch invariants before persistence.
type SimpleProcessor struct{}

func NewSimpleProcessor() *SimpleProcessor {
	return &SimpleProcessor{}
}

// Process deduplicates by URL, drops items without a usable title or URL,
// sanitizes text for the database and truncates previews.
func (p *SimpleProcessor) Process(items []collector.NewsItem) []ProcessedItem {
	out := make([]ProcessedItem, 0, len(items))
	seen := make(map[string]struct{})

	for _, it := range items {
		url := strings.TrimSpace(it.NewsURL)
		title := toValidUTF8(strings.TrimSpace(it.Title))
		if url == "" || title == "" {
			continue
		}

		id := hashURL(url)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		out = append(out, ProcessedItem{
			ID:          id,
			Portal:      it.Portal,
			Title:       title,
			Preview:     truncateRunes(toValidUTF8(it.Preview), previewMaxRunes),
			ImageURL:    it.ImageURL,
			NewsURL:     url,
			PublishedAt: it.PublishedAt,
			Via:         it.Via,
		})
	}

	return out
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}

// toValidUTF8 normalizes text to legal UTF-8 so PostgreSQL never rejects a
// row over a stray byte from a misencoded feed.
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunes cuts a string to limit runes, appending an ellipsis when
// anything was removed.
func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 || s == "" {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
