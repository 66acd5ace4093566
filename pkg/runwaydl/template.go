package runwaydl

import (
	"errors"
	"fmt"
)

// ErrTemplateDerivation is returned by DeriveTemplate when the common prefix
// and suffix of the sample pair overlap, leaving no room for a middle segment.
var ErrTemplateDerivation = errors.New("cannot derive URL template from sample pair")

// URLTemplate maps thumbnail URLs to full-image URLs.
//
// It is derived from a single known (thumbnail, full image) pair: the full
// image URL is decomposed into the longest prefix and suffix it shares with
// the thumbnail URL, plus whatever sits in between.  Applying the template to
// another thumbnail keeps the prefix and middle and swaps in that thumbnail's
// tail.  The template assumes every image in a gallery follows the same URL
// shape; if the site ever breaks that assumption the bad URLs surface later
// as HTTP failures, not here.
type URLTemplate struct {
	prefix    string
	middle    string
	suffixLen int
}

// DeriveTemplate computes a URLTemplate from one known thumbnail URL and the
// full-image URL it corresponds to.
//
// The prefix and suffix are computed independently, so for very short or very
// similar URLs the two regions can overlap.  In that case no valid middle
// segment exists and ErrTemplateDerivation is returned; callers must abort the
// gallery rather than download malformed URLs.
func DeriveTemplate(thumbURL, fullURL string) (*URLTemplate, error) {
	prefix := commonPrefix(thumbURL, fullURL)
	suffix := commonSuffix(thumbURL, fullURL)

	if len(prefix)+len(suffix) > len(thumbURL) || len(prefix)+len(suffix) > len(fullURL) {
		return nil, fmt.Errorf("%w: prefix %q and suffix %q overlap", ErrTemplateDerivation, prefix, suffix)
	}

	return &URLTemplate{
		prefix:    prefix,
		middle:    fullURL[len(prefix) : len(fullURL)-len(suffix)],
		suffixLen: len(suffix),
	}, nil
}

// Apply derives the full-image URL for a thumbnail URL.  No validation is done
// on the result; a malformed URL will fail at download time.
func (t *URLTemplate) Apply(thumbURL string) string {
	return t.prefix + t.middle + lastN(thumbURL, t.suffixLen)
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}

func lastN(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
