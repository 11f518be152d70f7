package processor

import (
	"strings"
	"testing"
	"time"

	"github.com/radarjus/newsradar/internal/collector"
)

func TestHashURLDeterministicAndDistinct(t *testing.T) {
	url1 := "https://conjur.com.br/a"
	url2 := "https://conjur.com.br/b"

	h1a := hashURL(url1)
	h1b := hashURL(url1)
	h2 := hashURL(url2)

	if h1a != h1b {
		t.Fatalf("hashURL not deterministic: %q vs %q", h1a, h1b)
	}
	if h1a == h2 {
		t.Fatalf("hashURL should differ for different URLs: %q", h1a)
	}
}

func TestTruncateRunesBoundsPreview(t *testing.T) {
	long := strings.Repeat("decisão ", 50)
	out := truncateRunes(long, 200)
	if got := len([]rune(out)); got != 201 { // 200 runes + ellipsis
		t.Fatalf("truncated length = %d runes, want 201", got)
	}
	if !strings.HasSuffix(out, "…") {
		t.Fatalf("truncated preview should end with ellipsis: %q", out)
	}

	if got := truncateRunes("texto curto", 200); got != "texto curto" {
		t.Fatalf("short preview should pass through: %q", got)
	}
	if got := truncateRunes("qualquer", 0); got != "" {
		t.Fatalf("zero limit should yield empty, got %q", got)
	}
}

func TestProcessEnforcesBatchInvariants(t *testing.T) {
	now := time.Now()
	p := NewSimpleProcessor()

	items := []collector.NewsItem{
		{Portal: "conjur", Title: "Primeira notícia", NewsURL: "https://conjur.com.br/1", PublishedAt: now},
		{Portal: "conjur", Title: "Primeira notícia duplicada", NewsURL: "https://conjur.com.br/1", PublishedAt: now},
		{Portal: "migalhas", Title: "   ", NewsURL: "https://migalhas.com.br/2", PublishedAt: now},
		{Portal: "migalhas", Title: "Sem URL", NewsURL: "", PublishedAt: now},
		{Portal: "jota", Title: "Segunda notícia", Preview: strings.Repeat("x", 500), NewsURL: "https://jota.info/3", PublishedAt: now},
	}

	out := p.Process(items)
	if len(out) != 2 {
		t.Fatalf("got %d items, want 2 (dupe, untitled and url-less dropped)", len(out))
	}
	if out[0].NewsURL != "https://conjur.com.br/1" || out[0].Title != "Primeira notícia" {
		t.Fatalf("first occurrence should win the dedupe: %+v", out[0])
	}
	if got := len([]rune(out[1].Preview)); got > 201 {
		t.Fatalf("preview not truncated: %d runes", got)
	}
	for _, it := range out {
		if it.ID == "" {
			t.Fatalf("item %q missing id", it.NewsURL)
		}
	}
}
