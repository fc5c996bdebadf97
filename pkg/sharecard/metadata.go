package sharecard

// OpenGraph holds the og:* document-head properties for a share page.
type OpenGraph struct {
	Type   string
	Images []string
}

// Twitter holds the twitter:* document-head properties for a share page.
type Twitter struct {
	Card   string
	Images []string
}

// Metadata describes the social preview for a share page. It is consumed
// by head-tag rendering; a Metadata value is always renderable, even when
// Fallback is set.
type Metadata struct {
	Title       string
	Description string
	OpenGraph   OpenGraph
	Twitter     Twitter
	// Fallback marks generic metadata produced because the record lookup
	// failed. Fallback metadata carries no image references.
	Fallback bool
}
