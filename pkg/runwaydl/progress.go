package runwaydl

import "runwaydl/pkg/runwaydl/meta"

// GalleryMetadata contains data about a runway gallery.
type GalleryMetadata = meta.GalleryMetadata

// EventKind tags the variants of Event.
type EventKind int

const (
	// EventInfo is an informational message.
	EventInfo EventKind = iota
	// EventProgress reports one completed image download within a gallery.
	EventProgress
	// EventError reports a failure.
	EventError
)

// Event is a structured progress event.  For EventProgress, Label is stable
// across every event belonging to one gallery, and Completed increases by one
// per event up to Total.
type Event struct {
	Kind      EventKind
	Label     string
	Completed int
	Total     int
	Message   string
}

// ProgressReporter is an interface for receiving progress updates from a
// gallery run.  Implementations must tolerate concurrent image downloads
// finishing out of sequence order; ImageDone is invoked in completion order
// with a running count.
type ProgressReporter interface {
	// GalleryFetch is called when the driver starts navigating to a gallery page.
	GalleryFetch(url string)
	// GalleryStart is called once metadata has been extracted and downloading
	// is about to begin.
	GalleryStart(gallery *GalleryMetadata)
	// ImageDone is called once per image, whether the download succeeded or
	// failed.  err is non-nil for failures; failed images still count.
	ImageDone(gallery *GalleryMetadata, completed, total int, err error)
	// GallerySkip is called when a gallery is skipped without downloading.
	GallerySkip(gallery *GalleryMetadata, reason string)
	// GalleryEnd is called when a gallery finishes.  err is non-nil if the
	// gallery was aborted before any images could be downloaded.
	GalleryEnd(gallery *GalleryMetadata, err error)
	// Done is called when the whole run is complete.
	Done()
}

// NewEventReporter returns a ProgressReporter that converts every callback
// into a structured Event passed to fn.  This is the boundary used by
// front ends that consume an event stream rather than implementing
// ProgressReporter themselves.
func NewEventReporter(fn func(Event)) ProgressReporter {
	return &eventReporter{fn: fn}
}

type eventReporter struct {
	fn func(Event)
}

func (r *eventReporter) GalleryFetch(url string) {
	r.fn(Event{Kind: EventInfo, Message: "Fetching gallery: " + url})
}

func (r *eventReporter) GalleryStart(gallery *GalleryMetadata) {
	r.fn(Event{Kind: EventInfo, Message: "Starting gallery: " + gallery.Label()})
}

func (r *eventReporter) ImageDone(gallery *GalleryMetadata, completed, total int, err error) {
	if err != nil {
		r.fn(Event{Kind: EventError, Message: err.Error()})
	}
	r.fn(Event{Kind: EventProgress, Label: gallery.Label(), Completed: completed, Total: total})
}

func (r *eventReporter) GallerySkip(gallery *GalleryMetadata, reason string) {
	r.fn(Event{Kind: EventInfo, Message: "Skipping gallery: " + gallery.Label() + ": " + reason})
}

func (r *eventReporter) GalleryEnd(gallery *GalleryMetadata, err error) {
	if err != nil {
		r.fn(Event{Kind: EventError, Message: "Gallery failed: " + gallery.URL + ": " + err.Error()})
		return
	}
	r.fn(Event{Kind: EventInfo, Message: "Done gallery: " + gallery.Label()})
}

func (r *eventReporter) Done() {
	r.fn(Event{Kind: EventInfo, Message: "All done"})
}
