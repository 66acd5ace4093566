package runwaydl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"runwaydl/pkg/download"
	"runwaydl/pkg/imaging"
)

const partialSuffix = ".part"

// GalleryDownloader downloads a gallery's derived full-image URLs.
//
// Every image is launched at once; effective parallelism is bounded by the
// download client's transport connection caps rather than an explicit worker
// pool.  Filenames are assigned by list position (1.jpg, 2.jpg, ...), while
// progress events fire in completion order.
type GalleryDownloader struct {
	client *download.Client
	log    zerolog.Logger
}

// NewGalleryDownloader returns a GalleryDownloader using the given client.
func NewGalleryDownloader(client *download.Client, log zerolog.Logger) *GalleryDownloader {
	return &GalleryDownloader{client: client, log: log}
}

type taskResult struct {
	index int
	err   error
}

// DownloadGallery fetches each URL, converts the bytes to JPEG, and writes
// destDir/{position}.jpg.  A failed image is logged and counted toward
// progress but never aborts its siblings.  Exactly len(urls) ImageDone calls
// are made, with a completed count increasing by one each time.
func (d *GalleryDownloader) DownloadGallery(
	ctx context.Context,
	gallery *GalleryMetadata,
	urls []string,
	destDir string,
	reporter ProgressReporter,
) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	total := len(urls)
	results := make(chan taskResult, total)

	var group errgroup.Group
	for i, url := range urls {
		index := i + 1
		group.Go(func() error {
			results <- taskResult{index: index, err: d.downloadImage(ctx, url, destDir, index)}
			return nil
		})
	}

	go func() {
		_ = group.Wait()
		close(results)
	}()

	completed := 0
	for result := range results {
		completed++
		if result.err != nil {
			d.log.Error().
				Err(result.err).
				Str("gallery", gallery.Label()).
				Int("image", result.index).
				Msg("image download failed")
		}
		reporter.ImageDone(gallery, completed, total, result.err)
	}

	return nil
}

func (d *GalleryDownloader) downloadImage(ctx context.Context, url, destDir string, index int) error {
	// Checked here rather than enforced mid-transfer: once an image starts
	// writing it runs to completion, so cancellation never leaves stray files.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}

	data, err := d.client.GetBytes(ctx, url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}

	jpegData, err := imaging.ToJPEG(data)
	if err != nil {
		return fmt.Errorf("converting %s: %w", url, err)
	}

	dest := filepath.Join(destDir, strconv.Itoa(index)+"."+imaging.Ext)
	if err := os.WriteFile(dest+partialSuffix, jpegData, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := os.Rename(dest+partialSuffix, dest); err != nil {
		return fmt.Errorf("renaming %s: %w", dest, err)
	}

	return nil
}
