package collector

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	cdataRe      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	imgSrcRe     = regexp.MustCompile(`<img[^>]+src=["']?([^"'\s>]+)`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// cleanText turns a feed text field into plain text: CDATA unwrapped, tags
// stripped, entities decoded, whitespace collapsed to single spaces.
func cleanText(s string) string {
	s = cdataRe.ReplaceAllString(s, "$1")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// firstImgSrc extracts the src of the first <img> tag in an HTML fragment.
// Feed descriptions often arrive HTML-encoded, so entities are decoded
// before matching.
func firstImgSrc(fragment string) string {
	fragment = html.UnescapeString(fragment)
	m := imgSrcRe.FindStringSubmatch(fragment)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// looksLikeImage reports whether a URL's path ends in a known image
// extension. Query strings are ignored.
func looksLikeImage(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ResolveURL resolves a possibly relative URL against a base. Handles
// protocol-relative (//host/p) and root-relative (/p) forms; absolute URLs
// pass through untouched.
func ResolveURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" {
		return ""
	}
	return baseURL.ResolveReference(parsed).String()
}
