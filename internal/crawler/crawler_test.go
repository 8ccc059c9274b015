package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
)

// fakeFetcher serves canned HTML per URL.
type fakeFetcher struct {
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (*document.Document, error) {
	f.calls = append(f.calls, pageURL)
	html, ok := f.pages[pageURL]
	if !ok {
		return nil, fmt.Errorf("status 404")
	}
	return document.Parse(pageURL, html)
}

func newTestCrawler(f Fetcher) *Crawler {
	return New(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCollectProductURLsSinglePage(t *testing.T) {
	listing := "https://shop.test/paddles"
	fetcher := &fakeFetcher{pages: map[string]string{
		listing: `<html><body>
			<a class="product-link" href="/paddle-one">One</a>
			<a class="product-link" href="https://shop.test/paddle-two">Two</a>
			<a class="product-link" href="/paddle-one">One again</a>
			<a class="product-link" href="#top">Anchor</a>
		</body></html>`,
	}}

	p := &extract.Profile{
		Name: "Test",
		Listing: extract.Listing{
			URL:                  listing,
			MaxPages:             1,
			ProductLinkSelectors: []string{"a.product-link"},
		},
	}

	urls, err := newTestCrawler(fetcher).CollectProductURLs(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://shop.test/paddle-one",
		"https://shop.test/paddle-two",
	}, urls)
}

func TestCollectProductURLsPaginates(t *testing.T) {
	base := "https://shop.test/paddles"
	page2 := base + "?" + fmt.Sprintf("CatListingOffset=%d&Offset=%d&Per_Page=%d", 2, 2, 2)

	fetcher := &fakeFetcher{pages: map[string]string{
		base: `<html><body>
			<a class="link" href="/p1">1</a>
			<a class="link" href="/p2">2</a>
		</body></html>`,
		page2: `<html><body>
			<a class="link" href="/p3">3</a>
		</body></html>`,
	}}

	p := &extract.Profile{
		Name: "Test",
		Listing: extract.Listing{
			URL:                  base,
			OffsetQuery:          "CatListingOffset=%d&Offset=%d&Per_Page=%d",
			PerPage:              2,
			MaxPages:             2,
			ProductLinkSelectors: []string{"a.link"},
		},
	}

	urls, err := newTestCrawler(fetcher).CollectProductURLs(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, urls, 3)
	assert.Equal(t, []string{base, page2}, fetcher.calls)
}

func TestCollectProductURLsSelectorFallback(t *testing.T) {
	listing := "https://shop.test/paddles"
	fetcher := &fakeFetcher{pages: map[string]string{
		listing: `<html><body><a class="alt-link" href="/p1">1</a></body></html>`,
	}}

	p := &extract.Profile{
		Name: "Test",
		Listing: extract.Listing{
			URL:                  listing,
			MaxPages:             1,
			ProductLinkSelectors: []string{"a.primary-link", "a.alt-link"},
		},
	}

	urls, err := newTestCrawler(fetcher).CollectProductURLs(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://shop.test/p1"}, urls)
}

func TestCollectProductURLsFirstPageFailure(t *testing.T) {
	p := &extract.Profile{
		Name: "Test",
		Listing: extract.Listing{
			URL:                  "https://shop.test/missing",
			MaxPages:             3,
			ProductLinkSelectors: []string{"a"},
		},
	}

	_, err := newTestCrawler(&fakeFetcher{pages: map[string]string{}}).
		CollectProductURLs(context.Background(), p)
	require.Error(t, err)
}

func TestCollectProductURLsRequiresListingURL(t *testing.T) {
	_, err := newTestCrawler(&fakeFetcher{}).
		CollectProductURLs(context.Background(), &extract.Profile{Name: "Test"})
	require.Error(t, err)
}
