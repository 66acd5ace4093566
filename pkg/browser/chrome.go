package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

const (
	navigateTimeout = 30 * time.Second
	stepTimeout     = 10 * time.Second
)

// Chrome is a Page backed by a chromedp-driven Chrome instance.
type Chrome struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewChrome launches a browser and opens a single tab.  Pass headless=false
// to watch the browser work.
func NewChrome(ctx context.Context, headless bool, userAgent string) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Start the browser right away so a missing Chrome binary fails fast,
	// rather than on the first gallery.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Chrome{ctx: browserCtx, cancel: cancel, cancelAlloc: cancelAlloc}, nil
}

// Close shuts the browser down.
func (c *Chrome) Close() error {
	err := chromedp.Cancel(c.ctx)
	c.cancel()
	c.cancelAlloc()
	return err
}

func (c *Chrome) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Navigate loads a URL and waits for the document body to be ready.
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.run(navigateTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// Text returns the visible text of the first element matching sel.
func (c *Chrome) Text(ctx context.Context, sel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	err := c.run(stepTimeout, chromedp.Text(sel, &out, chromedp.ByQuery, chromedp.NodeVisible))
	return out, err
}

// CollectAttrs reads attr from the first n elements matching sel in display
// order, scrolling each into view so lazy-loaded elements further down the
// page get populated before they are read.
func (c *Chrome) CollectAttrs(ctx context.Context, sel, attr string, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var nodes []*cdp.Node
	if err := c.run(stepTimeout, chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll)); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no elements match %q", sel)
	}

	values := make([]string, 0, n)
	for i := 0; i < n; i++ {
		expr := fmt.Sprintf(`(() => {
			const el = document.querySelectorAll(%q)[%d];
			if (!el) return "";
			el.scrollIntoView();
			return el.getAttribute(%q) || "";
		})()`, sel, i, attr)

		var value string
		if err := c.run(stepTimeout, chromedp.Evaluate(expr, &value)); err != nil {
			return nil, err
		}
		if value == "" {
			return nil, fmt.Errorf("element %d matching %q has no %q attribute", i, sel, attr)
		}
		values = append(values, value)
	}

	return values, nil
}

// ClickAndRead clicks the first element matching clickSel, waits for waitSel
// to appear, and returns its attr.
func (c *Chrome) ClickAndRead(ctx context.Context, clickSel, waitSel, attr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var value string
	var ok bool
	err := c.run(stepTimeout,
		chromedp.Click(clickSel, chromedp.ByQuery, chromedp.NodeVisible),
		chromedp.WaitVisible(waitSel, chromedp.ByQuery),
		chromedp.AttributeValue(waitSel, attr, &value, &ok, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return "", fmt.Errorf("element matching %q has no %q attribute", waitSel, attr)
	}

	return value, nil
}
