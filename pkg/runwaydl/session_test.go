package runwaydl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runwaydl/pkg/download"
)

// fakePage is a browser.Page serving canned gallery pages.
type fakePage struct {
	title     string
	season    string
	info      string
	thumbs    []string
	fullImage string
	navErrs   map[string]error
	navigated []string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.navigated = append(p.navigated, url)
	return p.navErrs[url]
}

func (p *fakePage) Text(ctx context.Context, sel string) (string, error) {
	switch sel {
	case selTitle:
		return p.title, nil
	case selSeason:
		return p.season, nil
	case selInfo:
		return p.info, nil
	}
	return "", fmt.Errorf("no element matches %q", sel)
}

func (p *fakePage) CollectAttrs(ctx context.Context, sel, attr string, n int) ([]string, error) {
	if n > len(p.thumbs) {
		return nil, fmt.Errorf("only %d elements match %q", len(p.thumbs), sel)
	}
	return append([]string(nil), p.thumbs[:n]...), nil
}

func (p *fakePage) ClickAndRead(ctx context.Context, clickSel, waitSel, attr string) (string, error) {
	return p.fullImage, nil
}

func TestSessionEndToEnd(t *testing.T) {
	server := newImageServer(t)
	page := &fakePage{
		title:  "Designer X - Runway - Show Name - Womenswear",
		season: "Fall / 2024",
		info:   "3 photos",
		thumbs: []string{
			server.URL + "/thumbs/small_0001.jpg",
			server.URL + "/thumbs/small_0002.jpg",
			server.URL + "/thumbs/small_0003.jpg",
		},
		fullImage: server.URL + "/photos/large_0001.jpg",
	}

	root := t.TempDir()
	session := NewSession(page, download.NewClient(), SessionOptions{Root: root}, zerolog.Nop())
	reporter := &recordingReporter{}

	session.Run(context.Background(), []string{"https://www.firstview.com/collection_images.php?id=1"}, reporter)

	require.Len(t, reporter.starts, 1)
	gallery := reporter.starts[0]
	assert.Equal(t, "Designer X", gallery.Designer)
	assert.Equal(t, "Womenswear", gallery.Gender)
	assert.Equal(t, "Fall 2024", gallery.Season)
	assert.Equal(t, "Show Name", gallery.Album)
	assert.Equal(t, 3, gallery.ImageCount)
	assert.Equal(t, "Designer X - Womenswear - Fall / 2024 - Show Name", gallery.Label())

	// Output layout: root/designer/gender/season/album/{1..3}.jpg
	destDir := filepath.Join(root, "Designer X", "Womenswear", "Fall 2024", "Show Name")
	for i := 1; i <= 3; i++ {
		_, err := os.Stat(filepath.Join(destDir, fmt.Sprintf("%d.jpg", i)))
		assert.NoError(t, err)
	}

	require.Len(t, reporter.done, 3)
	for _, call := range reporter.done {
		assert.NoError(t, call.err)
		assert.Equal(t, 3, call.total)
	}
	require.Len(t, reporter.ends, 1)
	assert.NoError(t, reporter.ends[0])
	assert.True(t, reporter.runDone)
}

func TestSessionContinuesAfterGalleryFailure(t *testing.T) {
	server := newImageServer(t)
	badURL := "https://www.firstview.com/collection_images.php?id=1"
	goodURL := "https://www.firstview.com/collection_images.php?id=2"

	page := &fakePage{
		title:     "A - B - C - D",
		season:    "Spring / 2025",
		info:      "1 photos",
		thumbs:    []string{server.URL + "/thumbs/small_0001.jpg"},
		fullImage: server.URL + "/photos/large_0001.jpg",
		navErrs:   map[string]error{badURL: fmt.Errorf("net::ERR_TIMED_OUT")},
	}

	session := NewSession(page, download.NewClient(), SessionOptions{Root: t.TempDir()}, zerolog.Nop())
	reporter := &recordingReporter{}

	session.Run(context.Background(), []string{badURL, goodURL}, reporter)

	// First gallery fails at page load, second still runs to completion.
	require.Len(t, reporter.ends, 2)
	assert.ErrorIs(t, reporter.ends[0], ErrPageFetch)
	assert.NoError(t, reporter.ends[1])
	require.Len(t, reporter.starts, 1)
	assert.Equal(t, []string{badURL, goodURL}, page.navigated)
}

func TestSessionMetadataParseFailure(t *testing.T) {
	page := &fakePage{
		title:  "not a gallery title",
		season: "Fall / 2024",
		info:   "3 photos",
	}

	session := NewSession(page, download.NewClient(), SessionOptions{Root: t.TempDir()}, zerolog.Nop())
	reporter := &recordingReporter{}

	session.Run(context.Background(), []string{"https://www.firstview.com/collection_images.php?id=1"}, reporter)

	require.Len(t, reporter.ends, 1)
	assert.ErrorIs(t, reporter.ends[0], ErrMetadataParse)
	assert.Empty(t, reporter.starts)
}

func TestSessionTemplateDerivationFailure(t *testing.T) {
	server := newImageServer(t)
	thumb := server.URL + "/thumbs/small_0001.jpg"
	page := &fakePage{
		title:  "A - B - C - D",
		season: "Fall / 2024",
		info:   "1 photos",
		thumbs: []string{thumb},
		// Identical sample pair: prefix and suffix overlap, no template.
		fullImage: thumb,
	}

	session := NewSession(page, download.NewClient(), SessionOptions{Root: t.TempDir()}, zerolog.Nop())
	reporter := &recordingReporter{}

	session.Run(context.Background(), []string{"https://www.firstview.com/collection_images.php?id=1"}, reporter)

	require.Len(t, reporter.ends, 1)
	assert.ErrorIs(t, reporter.ends[0], ErrTemplateDerivation)
	assert.Empty(t, reporter.done)
}

func TestSessionSkipExisting(t *testing.T) {
	root := t.TempDir()
	destDir := filepath.Join(root, "A", "D", "Fall 2024", "C")
	require.NoError(t, os.MkdirAll(destDir, 0755))

	page := &fakePage{
		title:  "A - B - C - D",
		season: "Fall / 2024",
		info:   "2 photos",
	}

	session := NewSession(page, download.NewClient(), SessionOptions{Root: root, SkipExisting: true}, zerolog.Nop())
	reporter := &recordingReporter{}

	session.Run(context.Background(), []string{"https://www.firstview.com/collection_images.php?id=1"}, reporter)

	assert.Equal(t, []string{"already downloaded"}, reporter.skips)
	assert.Empty(t, reporter.starts)
	assert.Empty(t, reporter.done)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://www.firstview.com/thumbs/1.jpg", resolveURL("/thumbs/1.jpg"))
	assert.Equal(t, "https://other.com/a.jpg", resolveURL("https://other.com/a.jpg"))
}
