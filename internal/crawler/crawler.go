// Package crawler walks a site's paddle listing pages and collects product
// URLs for the scraper.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
)

// Fetcher is the page retrieval dependency; satisfied by fetcher.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*document.Document, error)
}

type Crawler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

func New(fetcher Fetcher, logger *slog.Logger) *Crawler {
	return &Crawler{
		fetcher: fetcher,
		logger:  logger.With("component", "crawler"),
	}
}

// CollectProductURLs paginates through the profile's listing and returns the
// deduplicated product URLs in discovery order. Pagination stops at the
// profile's page cap, on a page with no product links, or when no next-page
// control is found.
func (c *Crawler) CollectProductURLs(ctx context.Context, p *extract.Profile) ([]string, error) {
	listing := p.Listing
	if listing.URL == "" {
		return nil, fmt.Errorf("profile %q has no listing URL", p.Name)
	}

	maxPages := listing.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	seen := make(map[string]bool)
	var urls []string

	for page := 1; page <= maxPages; page++ {
		pageURL := listing.PageURL(page)

		doc, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("fetch listing page: %w", err)
			}
			c.logger.Warn("listing page fetch failed, stopping pagination",
				"url", pageURL, "page", page, "error", err)
			break
		}

		found := c.productLinks(doc, listing)
		added := 0
		for _, u := range found {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
				added++
			}
		}

		c.logger.Info("listing page crawled",
			"site", p.Name, "page", page, "links", len(found), "new", added)

		if len(found) == 0 {
			break
		}
		if page < maxPages && listing.OffsetQuery == "" && !hasNextPage(doc, listing) {
			break
		}
	}

	return urls, nil
}

// productLinks extracts absolutized product URLs using the first link
// selector that matches anything.
func (c *Crawler) productLinks(doc *document.Document, listing extract.Listing) []string {
	var urls []string
	for _, sel := range listing.ProductLinkSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			href = strings.TrimSpace(href)
			if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
				return
			}
			if abs := doc.ResolveRef(href); abs != "" {
				urls = append(urls, abs)
			}
		})
		if len(urls) > 0 {
			break
		}
	}
	return urls
}

func hasNextPage(doc *document.Document, listing extract.Listing) bool {
	for _, sel := range listing.NextPageSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}
