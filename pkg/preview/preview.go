// Package preview fetches and parses gallery metadata with a plain HTTP GET,
// without any browser automation.  Front ends use it to validate a pasted URL
// list before a batch download is allowed to start.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"runwaydl/pkg/download"
	"runwaydl/pkg/preview/internal/htmlutils"
	"runwaydl/pkg/runwaydl/meta"
)

// GalleryURLPrefix is the shape every downloadable gallery URL must have.
const GalleryURLPrefix = "https://www.firstview.com/collection_images.php?id="

// ErrInvalidURL means a URL does not look like a gallery page.
var ErrInvalidURL = errors.New("not a gallery URL")

// Previewer fetches gallery metadata, caching results by URL so repeated
// previews of the same list don't re-fetch.
type Previewer struct {
	client    *download.Client
	urlPrefix string

	mu    sync.Mutex
	cache map[string]*meta.GalleryMetadata
}

// Option is an option that can be passed to New.
type Option func(*Previewer)

// WithURLPrefix overrides the URL shape previewed galleries must match.
// Mostly useful in tests.
func WithURLPrefix(prefix string) Option {
	return func(p *Previewer) {
		p.urlPrefix = prefix
	}
}

// New returns a Previewer using the given client.
func New(client *download.Client, options ...Option) *Previewer {
	previewer := &Previewer{
		client:    client,
		urlPrefix: GalleryURLPrefix,
		cache:     map[string]*meta.GalleryMetadata{},
	}

	for _, option := range options {
		option(previewer)
	}

	return previewer
}

// ValidateURL checks that a URL looks like a downloadable gallery page.
func (p *Previewer) ValidateURL(url string) error {
	if !strings.Contains(url, p.urlPrefix) {
		return fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	return nil
}

// Preview validates a gallery URL, fetches its page, and returns the parsed
// metadata.  Results are cached; a cached entry is returned without a fetch.
func (p *Previewer) Preview(ctx context.Context, url string) (*meta.GalleryMetadata, error) {
	if err := p.ValidateURL(url); err != nil {
		return nil, err
	}

	p.mu.Lock()
	cached := p.cache[url]
	p.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	resp, err := p.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	gallery, err := parseGalleryPage(url, doc)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[url] = gallery
	p.mu.Unlock()

	return gallery, nil
}

func parseGalleryPage(url string, doc *html.Node) (*meta.GalleryMetadata, error) {
	titleNode := htmlutils.FindNodeByClass(doc, "pageTitle")
	if titleNode == nil {
		return nil, fmt.Errorf("%s: page has no title element", url)
	}
	title := strings.TrimSpace(htmlutils.GetNodeTextContent(titleNode))

	designer, album, gender, err := meta.ParsePageTitle(title)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	seasonNode := htmlutils.FindNodeByClass(doc, "season")
	if seasonNode == nil {
		return nil, fmt.Errorf("%s: page has no season element", url)
	}
	rawSeason := strings.TrimSpace(htmlutils.GetNodeTextContent(seasonNode))

	// The image count is only displayed on some gallery layouts; a preview
	// without it is still useful for validating the URL list.
	count := 0
	if infoNode := htmlutils.FindNodeByClass(doc, "info"); infoNode != nil {
		count, err = meta.ParseImageCount(strings.TrimSpace(htmlutils.GetNodeTextContent(infoNode)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", url, err)
		}
	}

	return &meta.GalleryMetadata{
		URL:        url,
		Designer:   designer,
		Gender:     gender,
		Season:     meta.CleanSeason(rawSeason),
		RawSeason:  rawSeason,
		Album:      album,
		ImageCount: count,
	}, nil
}
