package extract

// Policy holds the business rules of lesson assembly. The defaults are the
// rules every published split was hashed with; changing them changes hashes.
type Policy struct {
	// MaxItems keeps only the first items of a lesson. Later items are
	// mostly vocabulary drills unrelated to the manuscript. Zero or less
	// keeps all of them.
	MaxItems int `yaml:"max_items"`

	// OriginalArticleMarker must appear in the name of the external link
	// pointing at the source article.
	OriginalArticleMarker string `yaml:"original_article_marker"`

	// OriginalArticlePrefix must start the URL of that link.
	OriginalArticlePrefix string `yaml:"original_article_prefix"`

	// Origin is prepended to root-relative exercise URLs.
	Origin string `yaml:"origin"`
}

// DefaultPolicy returns the rules used for all published splits.
func DefaultPolicy() Policy {
	return Policy{
		MaxItems:              3,
		OriginalArticleMarker: "Originalartikel",
		OriginalArticlePrefix: "https://www.dw.com",
		Origin:                "https://learngerman.dw.com",
	}
}
