// Package browser drives a headless browser through gallery pages.
package browser

import "context"

// Page is the subset of browser behavior the gallery session driver needs.
// Implementations own a single tab; galleries are visited one after another.
type Page interface {
	// Navigate loads a URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error

	// Text returns the visible text of the first element matching sel.
	Text(ctx context.Context, sel string) (string, error)

	// CollectAttrs reads attr from the first n elements matching sel, one at
	// a time in display order.  Each element is scrolled into view before the
	// next is read, since gallery thumbnails lazy-load as they become visible.
	CollectAttrs(ctx context.Context, sel, attr string, n int) ([]string, error)

	// ClickAndRead clicks the first element matching clickSel, waits for
	// waitSel to become visible, and returns that element's attr.
	ClickAndRead(ctx context.Context, clickSel, waitSel, attr string) (string, error)
}
