package document

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Document is one fetched, parsed product page. The extraction engine only
// reads it; fetching and parsing belong to the transport layer.
type Document struct {
	URL       string
	FetchedAt time.Time

	doc *goquery.Document
}

// New parses HTML from r into a queryable document.
func New(pageURL string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{URL: pageURL, FetchedAt: time.Now(), doc: doc}, nil
}

// Parse is a convenience wrapper over New for in-memory HTML.
func Parse(pageURL, html string) (*Document, error) {
	return New(pageURL, strings.NewReader(html))
}

// Find returns the selection matching a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Text returns the trimmed text of the first element matching selector,
// or "" when nothing matches.
func (d *Document) Text(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// FullText returns the visible text of the whole page.
func (d *Document) FullText() string {
	return strings.TrimSpace(d.doc.Text())
}

// PageTitle returns the contents of the <title> element.
func (d *Document) PageTitle() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Host returns the host part of the page URL, or "" when the URL does not
// parse.
func (d *Document) Host() string {
	u, err := url.Parse(d.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// ResolveRef resolves a possibly relative href against the page URL.
func (d *Document) ResolveRef(href string) string {
	base, err := url.Parse(d.URL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
