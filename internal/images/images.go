// Package images finds the primary product photo on a page and downloads it
// to local disk, organized by brand.
package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
)

// skipFragments mark image URLs that are never the product photo: spacer
// gifs, site chrome, and thumbnail renditions.
var skipFragments = []string{"blank.gif", "logo", "header", "banner", "_80x80"}

// ExtractURL walks the profile's image selectors in order and returns the
// first usable image URL, absolutized against the page URL or the profile's
// image prefix. Empty when no selector yields a usable image.
func ExtractURL(doc *document.Document, p *extract.Profile) string {
	for _, sel := range p.ImageSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			src, ok := s.Attr("src")
			if !ok {
				src, ok = s.Attr("data-src")
			}
			if !ok {
				return true
			}
			src = strings.TrimSpace(src)
			if src == "" || skipImage(src) {
				return true
			}
			found = absolutize(doc, p, src)
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func skipImage(src string) bool {
	lower := strings.ToLower(src)
	for _, frag := range skipFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

func absolutize(doc *document.Document, p *extract.Profile, src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	if p.ImageURLPrefix != "" && !strings.HasPrefix(src, "/") {
		return p.ImageURLPrefix + src
	}
	return doc.ResolveRef(src)
}

// Downloader saves product images under a base directory, one subdirectory
// per brand.
type Downloader struct {
	dir    string
	client *http.Client
	logger *slog.Logger
}

func NewDownloader(dir string, logger *slog.Logger) *Downloader {
	return &Downloader{
		dir:    dir,
		client: &http.Client{},
		logger: logger.With("component", "images"),
	}
}

// Download fetches the image and writes it to
// <dir>/<brand>/<brand>_<model>.<ext>. An already-present file is reused
// without refetching. Returns the local path.
func (d *Downloader) Download(ctx context.Context, imageURL, brand, model string) (string, error) {
	brandDir := filepath.Join(d.dir, SanitizeFilename(brand))
	if err := os.MkdirAll(brandDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := SanitizeFilename(brand) + "_" + SanitizeFilename(model) + extension(imageURL)
	path := filepath.Join(brandDir, name)

	if _, err := os.Stat(path); err == nil {
		d.logger.Debug("image already downloaded", "path", path)
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build image request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write image: %w", err)
	}

	d.logger.Info("image downloaded", "url", imageURL, "path", path)
	return path, nil
}

// SanitizeFilename lowercases and reduces a name to [a-z0-9-] so it is safe
// as a path component on any filesystem.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '/':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func extension(imageURL string) string {
	clean, _, _ := strings.Cut(imageURL, "?")
	ext := strings.ToLower(filepath.Ext(clean))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}
