package extract

import "fmt"

// Profile is a data-driven site adapter: every piece of site-specific markup
// knowledge lives in this table, so supporting a new site is a data change
// rather than a new scraper type. A generic profile serves unrecognized
// sites.
type Profile struct {
	// Name is the provenance string recorded on every record, e.g.
	// "Pickleball Galaxy".
	Name  string
	Hosts []string

	// TitleSelectors are tried in order until one yields plausible product
	// title text.
	TitleSelectors []string
	// SpecBlockSelectors designate the elements whose "key: value" lines
	// feed the spec table.
	SpecBlockSelectors []string
	// DescriptionSelector designates the region used by regex and keyword
	// strategies; empty means the whole page text.
	DescriptionSelector string

	// ImageSelectors are tried in order for the primary product image.
	ImageSelectors []string
	// ImageURLPrefix absolutizes site-relative image paths such as
	// "graphics/...".
	ImageURLPrefix string

	// KnownBrands anchors brand detection in titles and URLs.
	KnownBrands []string
	// ScrubWords are site names removed from model text before cleaning.
	ScrubWords []string

	// Fields declares the spec fields and their ordered strategies.
	Fields []FieldSpec
	// PerformanceFields is empty for sites that do not publish ratings;
	// ratings are never fabricated.
	PerformanceFields []FieldSpec

	Listing Listing
}

// Listing describes how to walk a site's paddle listing pages.
type Listing struct {
	URL string
	// OffsetQuery is a query-string template receiving (offset, offset,
	// perPage) for pages after the first; empty means the listing is a
	// single page.
	OffsetQuery          string
	PerPage              int
	MaxPages             int
	ProductLinkSelectors []string
	NextPageSelectors    []string
}

// PageURL returns the listing URL for a 1-based page number.
func (l Listing) PageURL(page int) string {
	if page <= 1 || l.OffsetQuery == "" {
		return l.URL
	}
	offset := (page - 1) * l.PerPage
	return l.URL + "?" + fmt.Sprintf(l.OffsetQuery, offset, offset, l.PerPage)
}
