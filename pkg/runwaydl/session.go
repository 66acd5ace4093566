// Package runwaydl downloads full-resolution runway-show galleries.
//
// A Session drives a browser through one gallery page at a time, reads the
// show's metadata and thumbnail list, derives full-image URLs from a single
// sample pair, and hands the result to a GalleryDownloader.
package runwaydl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog"

	"runwaydl/pkg/browser"
	"runwaydl/pkg/download"
	"runwaydl/pkg/runwaydl/meta"
)

// BaseURL is the site all relative image URLs resolve against.
const BaseURL = "https://www.firstview.com"

const (
	selTitle  = ".pageTitle"
	selSeason = ".season"
	selInfo   = ".info"
	selThumb  = ".picture"
	selViewer = `img[alt*="ImageID:"]`
)

var (
	// ErrPageFetch means a gallery page could not be loaded.
	ErrPageFetch = errors.New("gallery page fetch failed")
	// ErrMetadataParse means a gallery page was missing or had malformed
	// title, season, or count elements.
	ErrMetadataParse = errors.New("gallery metadata parse failed")
	// ErrNoThumbnails means the thumbnail list could not be collected.
	ErrNoThumbnails = errors.New("gallery thumbnails could not be collected")
)

type galleryState int

const (
	statePageLoaded galleryState = iota
	stateMetadataExtracted
	stateThumbnailsCollected
	stateTemplateDerived
	stateDownloading
	stateDone
)

func (s galleryState) String() string {
	switch s {
	case statePageLoaded:
		return "PageLoaded"
	case stateMetadataExtracted:
		return "MetadataExtracted"
	case stateThumbnailsCollected:
		return "ThumbnailsCollected"
	case stateTemplateDerived:
		return "TemplateDerived"
	case stateDownloading:
		return "Downloading"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// SessionOptions configure a Session.
type SessionOptions struct {
	// Root is the directory galleries are downloaded under; each gallery goes
	// to Root/designer/gender/season/album.
	Root string
	// SkipExisting skips any gallery whose album directory already exists.
	SkipExisting bool
}

// Session drives one browser tab through a list of gallery pages, strictly
// one gallery at a time.  Downloads within a gallery fan out concurrently.
type Session struct {
	page       browser.Page
	downloader *GalleryDownloader
	options    SessionOptions
	log        zerolog.Logger
}

// NewSession returns a Session that reads pages from page and downloads
// images with client.
func NewSession(page browser.Page, client *download.Client, options SessionOptions, log zerolog.Logger) *Session {
	return &Session{
		page:       page,
		downloader: NewGalleryDownloader(client, log),
		options:    options,
		log:        log,
	}
}

// Run processes each gallery URL in order.  A failed gallery is logged and
// reported, and the run continues with the next URL; no gallery failure ever
// aborts the whole run.  Cancellation is honored between galleries.
func (s *Session) Run(ctx context.Context, urls []string, reporter ProgressReporter) {
	for _, galleryURL := range urls {
		if ctx.Err() != nil {
			s.log.Warn().Msg("run canceled")
			break
		}
		if err := s.runGallery(ctx, galleryURL, reporter); err != nil {
			s.log.Error().Err(err).Str("url", galleryURL).Msg("gallery failed")
			reporter.GalleryEnd(&GalleryMetadata{URL: galleryURL}, err)
		}
	}
	reporter.Done()
}

func (s *Session) runGallery(ctx context.Context, galleryURL string, reporter ProgressReporter) error {
	reporter.GalleryFetch(galleryURL)

	if err := s.page.Navigate(ctx, galleryURL); err != nil {
		return fmt.Errorf("%w: %v", ErrPageFetch, err)
	}
	s.logState(galleryURL, statePageLoaded)

	gallery, err := s.extractMetadata(ctx, galleryURL)
	if err != nil {
		return err
	}
	s.logState(galleryURL, stateMetadataExtracted)

	destDir := gallery.Dir(s.options.Root)
	if s.options.SkipExisting {
		if _, err := os.Stat(destDir); err == nil {
			reporter.GallerySkip(gallery, "already downloaded")
			return nil
		}
	}

	thumbs, err := s.page.CollectAttrs(ctx, selThumb, "src", gallery.ImageCount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoThumbnails, err)
	}
	for i, thumb := range thumbs {
		thumbs[i] = resolveURL(thumb)
	}
	s.logState(galleryURL, stateThumbnailsCollected)

	fullImage, err := s.page.ClickAndRead(ctx, selThumb, selViewer, "src")
	if err != nil {
		return fmt.Errorf("opening image viewer: %w", err)
	}

	template, err := DeriveTemplate(thumbs[0], resolveURL(fullImage))
	if err != nil {
		return err
	}
	s.logState(galleryURL, stateTemplateDerived)

	imageURLs := make([]string, len(thumbs))
	for i, thumb := range thumbs {
		imageURLs[i] = template.Apply(thumb)
	}

	reporter.GalleryStart(gallery)
	s.logState(galleryURL, stateDownloading)
	s.log.Info().
		Str("gallery", gallery.Label()).
		Int("images", len(imageURLs)).
		Str("dir", destDir).
		Msg("downloading gallery")

	if err := s.downloader.DownloadGallery(ctx, gallery, imageURLs, destDir, reporter); err != nil {
		return err
	}

	reporter.GalleryEnd(gallery, nil)
	s.logState(galleryURL, stateDone)
	return nil
}

func (s *Session) extractMetadata(ctx context.Context, galleryURL string) (*GalleryMetadata, error) {
	title, err := s.page.Text(ctx, selTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: reading title: %v", ErrMetadataParse, err)
	}
	designer, album, gender, err := meta.ParsePageTitle(title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}

	rawSeason, err := s.page.Text(ctx, selSeason)
	if err != nil {
		return nil, fmt.Errorf("%w: reading season: %v", ErrMetadataParse, err)
	}

	info, err := s.page.Text(ctx, selInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: reading image count: %v", ErrMetadataParse, err)
	}
	count, err := meta.ParseImageCount(info)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataParse, err)
	}

	return &GalleryMetadata{
		URL:        galleryURL,
		Designer:   designer,
		Gender:     gender,
		Season:     meta.CleanSeason(rawSeason),
		RawSeason:  rawSeason,
		Album:      album,
		ImageCount: count,
	}, nil
}

func (s *Session) logState(galleryURL string, state galleryState) {
	s.log.Debug().Str("url", galleryURL).Stringer("state", state).Msg("gallery state")
}

// resolveURL resolves a possibly-relative image URL against the site base.
func resolveURL(raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	base, _ := url.Parse(BaseURL)
	return base.ResolveReference(ref).String()
}
