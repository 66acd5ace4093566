package reporters

import (
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/jwalton/gchalk"

	"runwaydl/pkg/runwaydl"
)

const barTemplate = `{{string . "prefix"}} {{counters .}} {{bar .}} {{percent .}}`

// progressBarReporter shows one pb progress bar per gallery.
type progressBarReporter struct {
	bar    *pb.ProgressBar
	failed int
}

func (p *progressBarReporter) GalleryFetch(url string) {
	fmt.Println("Fetching gallery:", url)
}

func (p *progressBarReporter) GalleryStart(gallery *runwaydl.GalleryMetadata) {
	p.failed = 0
	p.bar = pb.ProgressBarTemplate(barTemplate).Start(gallery.ImageCount)
	p.bar.Set("prefix", gallery.Label())
}

func (p *progressBarReporter) ImageDone(gallery *runwaydl.GalleryMetadata, completed, total int, err error) {
	if err != nil {
		p.failed++
	}
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progressBarReporter) GallerySkip(gallery *runwaydl.GalleryMetadata, reason string) {
	fmt.Printf("Skipping: %s: %s\n", galleryName(gallery), reason)
}

func (p *progressBarReporter) GalleryEnd(gallery *runwaydl.GalleryMetadata, err error) {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
	if err != nil {
		fmt.Println(gchalk.BrightRed(fmt.Sprintf("Error downloading gallery: %s: %v", galleryName(gallery), err)))
		return
	}
	if p.failed > 0 {
		fmt.Println(gchalk.BrightYellow(fmt.Sprintf("Done: %s (%d images failed)", gallery.Label(), p.failed)))
	} else {
		fmt.Println(gchalk.BrightGreen("Done: " + gallery.Label()))
	}
}

func (p *progressBarReporter) Done() {
	fmt.Println("All done")
}

// NewProgressBarReporter returns a ProgressReporter which shows a progress bar
// per gallery.
func NewProgressBarReporter() runwaydl.ProgressReporter {
	return &progressBarReporter{}
}
