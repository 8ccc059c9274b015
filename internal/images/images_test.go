package images

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/extract"
)

func parseDoc(t *testing.T, html string) *document.Document {
	t.Helper()
	doc, err := document.Parse("https://shop.test/product/paddle.html", html)
	require.NoError(t, err)
	return doc
}

func TestExtractURLSelectorPriority(t *testing.T) {
	html := `<html><body>
		<img id="main_image" src="/images/main.jpg">
		<img id="closeup_image" src="/images/closeup.jpg">
	</body></html>`

	p := &extract.Profile{
		ImageSelectors: []string{"img#closeup_image", "img#main_image"},
	}

	assert.Equal(t, "https://shop.test/images/closeup.jpg", ExtractURL(parseDoc(t, html), p))
}

func TestExtractURLSkipsChrome(t *testing.T) {
	html := `<html><body>
		<img class="pic" src="/graphics/blank.gif">
		<img class="pic" src="/graphics/site_logo.png">
		<img class="pic" src="/graphics/paddle_front.png">
	</body></html>`

	p := &extract.Profile{ImageSelectors: []string{"img.pic"}}

	assert.Equal(t, "https://shop.test/graphics/paddle_front.png", ExtractURL(parseDoc(t, html), p))
}

func TestExtractURLSkipsThumbnails(t *testing.T) {
	html := `<html><body><img class="pic" src="/images/paddle_80x80.jpg"></body></html>`
	p := &extract.Profile{ImageSelectors: []string{"img.pic"}}
	assert.Empty(t, ExtractURL(parseDoc(t, html), p))
}

func TestExtractURLAppliesPrefix(t *testing.T) {
	html := `<html><body><img id="closeup_image" src="graphics/00000001/paddle.jpg"></body></html>`
	p := &extract.Profile{
		ImageSelectors: []string{"img#closeup_image"},
		ImageURLPrefix: "https://www.pickleballgalaxy.com/mm5/",
	}

	assert.Equal(t,
		"https://www.pickleballgalaxy.com/mm5/graphics/00000001/paddle.jpg",
		ExtractURL(parseDoc(t, html), p))
}

func TestDownload(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	path, err := d.Download(context.Background(), srv.URL+"/paddle.jpg", "Selkirk", "SLK Era Power")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "selkirk", "selkirk_slk-era-power.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	// second download for the same paddle reuses the file
	_, err = d.Download(context.Background(), srv.URL+"/paddle.jpg", "Selkirk", "SLK Era Power")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDownloadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := d.Download(context.Background(), srv.URL+"/missing.jpg", "Selkirk", "Vanguard")
	require.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "slk-era-power", SanitizeFilename("SLK Era Power"))
	assert.Equal(t, "pro-lite", SanitizeFilename(" Pro-Lite! "))
	assert.Equal(t, "engage-pursuit", SanitizeFilename("Engage/Pursuit"))
}
