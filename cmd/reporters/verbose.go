package reporters

import (
	"fmt"
	"os"
	"sync"

	"github.com/jwalton/gchalk"

	"runwaydl/pkg/runwaydl"
)

type verboseReporter struct {
	mutex sync.Mutex
}

func (p *verboseReporter) log(message string, a ...interface{}) {
	p.mutex.Lock()
	fmt.Println(fmt.Sprintf(message, a...))
	p.mutex.Unlock()
}

func (p *verboseReporter) logError(message string, a ...interface{}) {
	p.mutex.Lock()
	os.Stderr.WriteString(gchalk.Stderr.BrightRed(fmt.Sprintf(message, a...) + "\n"))
	p.mutex.Unlock()
}

func galleryName(gallery *runwaydl.GalleryMetadata) string {
	if gallery.Designer == "" {
		return gallery.URL
	}
	return gallery.Label()
}

func (p *verboseReporter) GalleryFetch(url string) {
	p.log("Fetching gallery: %s", url)
}

func (p *verboseReporter) GalleryStart(gallery *runwaydl.GalleryMetadata) {
	p.log("Starting: %s (%d images)", gallery.Label(), gallery.ImageCount)
}

func (p *verboseReporter) ImageDone(gallery *runwaydl.GalleryMetadata, completed, total int, err error) {
	if err != nil {
		p.logError("Failed:     %s (%d/%d): %v", gallery.Label(), completed, total, err)
	} else {
		p.log("Downloaded: %s (%d/%d)", gallery.Label(), completed, total)
	}
}

func (p *verboseReporter) GallerySkip(gallery *runwaydl.GalleryMetadata, reason string) {
	p.log("Skipping: %s: %s", galleryName(gallery), reason)
}

func (p *verboseReporter) GalleryEnd(gallery *runwaydl.GalleryMetadata, err error) {
	if err == nil {
		p.log("Done: %s", galleryName(gallery))
	} else {
		p.logError("Error downloading gallery: %s: %v", galleryName(gallery), err)
	}
}

func (p *verboseReporter) Done() {
	p.log("All done")
}

// NewVerboseReporter returns a new ProgressReporter which logs all activity to stdout.
func NewVerboseReporter() runwaydl.ProgressReporter {
	return &verboseReporter{}
}
