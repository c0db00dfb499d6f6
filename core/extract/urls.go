package extract

import "strings"

// ResolveURL prefixes root-relative URLs with origin and returns every other
// URL unchanged.
func ResolveURL(rawURL, origin string) string {
	if strings.HasPrefix(rawURL, "/") {
		return origin + rawURL
	}
	return rawURL
}

// originalArticle returns the first link whose name contains marker and
// whose URL starts with prefix.
func originalArticle(links []RawLink, marker, prefix string) *string {
	for _, link := range links {
		if strings.Contains(link.Name, marker) && strings.HasPrefix(link.URL, prefix) {
			url := link.URL
			return &url
		}
	}
	return nil
}
