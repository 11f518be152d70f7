package portal

import "regexp"

// Portal describes one configured legal-news source: where its feeds live,
// which listing pages to fall back to, and what its article URLs look like.
type Portal struct {
	Code     string
	Name     string
	BaseURL  string
	FeedURLs []string
	// ListingURLs are only consulted when no feed yields items.
	ListingURLs []string
	// ArticlePattern matches hrefs on a listing page that point at articles.
	ArticlePattern *regexp.Regexp
}

// Defaults returns the built-in portal set. Callers own the slice; tests
// substitute their own portals instead of mutating this one.
func Defaults() []Portal {
	return []Portal{
		{
			Code:           "conjur",
			Name:           "Consultor Jurídico",
			BaseURL:        "https://www.conjur.com.br",
			FeedURLs:       []string{"https://www.conjur.com.br/rss.xml"},
			ListingURLs:    []string{"https://www.conjur.com.br/"},
			ArticlePattern: regexp.MustCompile(`conjur\.com\.br/20\d{2}-[a-z]{3}-\d{2}/`),
		},
		{
			Code:           "migalhas",
			Name:           "Migalhas",
			BaseURL:        "https://www.migalhas.com.br",
			FeedURLs:       []string{"https://www.migalhas.com.br/rss"},
			ListingURLs:    []string{"https://www.migalhas.com.br/quentes"},
			ArticlePattern: regexp.MustCompile(`migalhas\.com\.br/(quentes|depeso)/\d+`),
		},
		{
			Code:           "jota",
			Name:           "JOTA",
			BaseURL:        "https://www.jota.info",
			FeedURLs:       []string{"https://www.jota.info/feed"},
			ListingURLs:    []string{"https://www.jota.info/justica"},
			ArticlePattern: regexp.MustCompile(`jota\.info/(justica|tributos|stf|legislativo)/`),
		},
		{
			Code:           "stf",
			Name:           "Notícias STF",
			BaseURL:        "https://noticias.stf.jus.br",
			ListingURLs:    []string{"https://noticias.stf.jus.br/"},
			ArticlePattern: regexp.MustCompile(`noticias\.stf\.jus\.br/postsnoticias/`),
		},
		{
			Code:           "stj",
			Name:           "Notícias STJ",
			BaseURL:        "https://www.stj.jus.br",
			ListingURLs:    []string{"https://www.stj.jus.br/sites/portalp/Paginas/Comunicacao/Noticias/"},
			ArticlePattern: regexp.MustCompile(`stj\.jus\.br/.*/Comunicacao/Noticias?/`),
		},
	}
}
